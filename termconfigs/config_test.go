package termconfigs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/reusee/aterm/cmds"
	"github.com/reusee/aterm/configs"
	"github.com/reusee/aterm/modes"
	"github.com/reusee/aterm/terms"
	"github.com/reusee/dscope"
)

func scopeWithFiles(t *testing.T, paths ...string) dscope.Scope {
	return dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() configs.Loader {
			return configs.NewLoader(paths, schema)
		},
	)
}

func TestDefaults(t *testing.T) {
	config := dscope.Get[terms.Config](scopeWithFiles(t))
	if config != terms.DefaultConfig() {
		t.Fatalf("got %+v", config)
	}
}

func TestConfigFromFile(t *testing.T) {
	config := dscope.Get[terms.Config](scopeWithFiles(t, "testdata/small.cue"))
	if config.BlockSize != 64 {
		t.Fatalf("got %v", config.BlockSize)
	}
	if config.MaxSlots != 4096 {
		t.Fatalf("got %v", config.MaxSlots)
	}
	if config.HighWater != 0.5 {
		t.Fatalf("got %v", config.HighWater)
	}
	if config.CollectRatio != 0 {
		t.Fatalf("got %v", config.CollectRatio)
	}
	if config.MinCollectSlots != 0 {
		t.Fatalf("got %v", config.MinCollectSlots)
	}
	if config.InternLoadFactor != 1.5 {
		t.Fatalf("got %v", config.InternLoadFactor)
	}
	if config.InternInitialBuckets != terms.DefaultConfig().InternInitialBuckets {
		t.Fatalf("got %v", config.InternInitialBuckets)
	}
	if !config.Debug || config.ThreadSafe {
		t.Fatalf("got %+v", config)
	}
	if err := config.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestFilePrecedence(t *testing.T) {
	config := dscope.Get[terms.Config](scopeWithFiles(t,
		"testdata/threads.cue",
		"testdata/small.cue",
	))
	if config.BlockSize != 128 {
		t.Fatalf("got %v", config.BlockSize)
	}
	// from the second file
	if config.MaxSlots != 4096 {
		t.Fatalf("got %v", config.MaxSlots)
	}
	if !config.ThreadSafe {
		t.Fatal()
	}
}

func TestFlags(t *testing.T) {
	cmds.GlobalExecutor.MustExecute([]string{
		"-block-size", "256",
		"-max-slots", "8192",
		"-thread-safe",
	})
	t.Cleanup(func() {
		cmds.GlobalExecutor.MustExecute([]string{
			"-block-size.",
			"-max-slots.",
			"!-thread-safe",
		})
	})

	config := dscope.Get[terms.Config](scopeWithFiles(t, "testdata/small.cue"))
	if config.BlockSize != 256 {
		t.Fatalf("got %v", config.BlockSize)
	}
	if config.MaxSlots != 8192 {
		t.Fatalf("got %v", config.MaxSlots)
	}
	if !config.ThreadSafe {
		t.Fatal()
	}
	// not covered by flags
	if config.HighWater != 0.5 {
		t.Fatalf("got %v", config.HighWater)
	}
}

func TestSchemaViolation(t *testing.T) {
	defer func() {
		if p := recover(); p == nil {
			t.Fatal("should panic")
		}
	}()
	dscope.Get[terms.Config](scopeWithFiles(t, "testdata/bad.cue"))
}

func TestConfigsLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aterm.cue")
	if err := os.WriteFile(path, []byte("gc: block_size: 32\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	scope := dscope.New(new(Module), modes.ForTest(t))
	loader := dscope.Get[configs.Loader](scope)
	if !slices.Contains(loader.Paths(), path) {
		t.Fatalf("got %v", loader.Paths())
	}
	if n := configs.First[int](loader, "gc.block_size"); n != 32 {
		t.Fatalf("got %v", n)
	}
}

type engineModule struct {
	dscope.Module
	Terms   terms.Module
	Configs Module
}

func TestEngineFromConfig(t *testing.T) {
	scope := dscope.New(new(engineModule), modes.ForTest(t)).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{"testdata/small.cue"}, schema)
		},
	)
	engine := dscope.Get[*terms.Engine](scope)
	defer engine.Close()
	if engine.Config().BlockSize != 64 {
		t.Fatalf("got %v", engine.Config().BlockSize)
	}

	sym := engine.Symbol("f", 1, false)
	v := engine.NewVector()
	defer v.Release()
	for i := range int64(1000) {
		v.Push(engine.Appl(sym, engine.Int(i)))
	}
	if engine.Stats().Collections == 0 {
		t.Fatal("expecting collections")
	}
	if v.Get(999).Arg(0).Int() != 999 {
		t.Fatal()
	}
}
