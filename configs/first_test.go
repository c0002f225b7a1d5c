package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)

	str := First[string](loader, "str")
	if str != "bar" {
		t.Fatalf("got %v", str)
	}

	n, ok := Lookup[int](loader, "gc.block_size")
	if !ok || n != 512 {
		t.Fatalf("got %v %v", n, ok)
	}

	if str := First[string](loader, "nope"); str != "" {
		t.Fatalf("got %v", str)
	}

}
