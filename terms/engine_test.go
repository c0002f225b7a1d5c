package terms

import (
	"errors"
	"testing"

	"github.com/reusee/aterm/modes"
	"github.com/reusee/dscope"
)

func newTestEngine(t *testing.T, fns ...func(*Config)) *Engine {
	config := DefaultConfig()
	for _, fn := range fns {
		fn(&config)
	}
	scope := dscope.New(
		new(Module),
		modes.ForTest(t),
		dscope.Provide(config),
	)
	engine := dscope.Get[*Engine](scope)
	t.Cleanup(engine.Close)
	return engine
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		p := recover()
		if p == nil {
			t.Fatalf("expecting panic with %v", target)
		}
		err, ok := p.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("got %v", p)
		}
	}()
	fn()
}

func TestModuleDebugMode(t *testing.T) {
	e := newTestEngine(t)
	if !e.Config().Debug {
		t.Fatal()
	}
}

func TestBadConfig(t *testing.T) {
	config := DefaultConfig()
	config.HighWater = 2
	if _, err := NewEngine(config, nil); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("got %v", err)
	}
	config = DefaultConfig()
	config.MaxSlots = 10
	if _, err := NewEngine(config, nil); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("got %v", err)
	}
}

func TestClose(t *testing.T) {
	e, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	i := e.Int(1)
	e.Close()
	if i.Valid() {
		t.Fatal()
	}
	expectPanic(t, ErrClosed, func() {
		e.Int(1)
	})
	expectPanic(t, ErrStaleTerm, func() {
		i.Int()
	})
	// idempotent
	e.Close()
}

func TestIsolatedEngines(t *testing.T) {
	e1 := newTestEngine(t)
	e2 := newTestEngine(t)
	if e1.Int(1) == e2.Int(1) {
		t.Fatal()
	}
	if e1.Symbol("f", 1, false) == e2.Symbol("f", 1, false) {
		t.Fatal()
	}
}
