package debugs

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/aterm/terms"
	"go.starlark.net/starlark"
)

func newSession(t *testing.T, config terms.Config) (*terms.Engine, *Session) {
	engine, err := terms.NewEngine(config, nil)
	if err != nil {
		t.Fatal(err)
	}
	session := NewSession(engine)
	t.Cleanup(func() {
		session.Close()
		engine.Close()
	})
	return engine, session
}

func TestSessionBuild(t *testing.T) {
	engine, session := newSession(t, terms.DefaultConfig())
	globals, err := session.Eval("test.star", `
a = aterm.appl("a")
t = aterm.appl("f", aterm.appl("g", a), aterm.appl("g", a))
same = t[0] == t[1]
name = t.name
arity = t.arity
l = aterm.list(aterm.int(1), aterm.real(2.5), aterm.blob(b"xy"))
n = len(l.elements)
head = l.head.int
q = aterm.appl("h", quoted = True)
p = aterm.placeholder(aterm.int(3))
c = aterm.cons(aterm.int(0), aterm.empty)
`, nil)
	if err != nil {
		t.Fatal(err)
	}

	for name, expected := range map[string]string{
		"t":     "f(g(a),g(a))",
		"same":  "True",
		"name":  `"f"`,
		"arity": "2",
		"l":     "[1,2.5,#7879]",
		"n":     "3",
		"head":  "1",
		"q":     `"h"`,
		"p":     "<3>",
		"c":     "[0]",
	} {
		if got := globals[name].String(); got != expected {
			t.Fatalf("%s: got %s, want %s", name, got, expected)
		}
	}

	f := engine.Symbol("f", 2, false)
	a := engine.Appl(engine.Symbol("a", 0, false))
	ga := engine.Appl(engine.Symbol("g", 1, false), a)
	if globals["t"].(TermValue).Term != engine.Appl(f, ga, ga) {
		t.Fatal("not shared with the engine")
	}
}

func TestSessionGlobals(t *testing.T) {
	engine, session := newSession(t, terms.DefaultConfig())
	root := engine.List(engine.Int(1), engine.Int(2))
	globals, err := session.Eval("test.star", `
k = root.kind
total = 0
for e in root.elements:
    total += e.int
stats = aterm.stats()
`, map[string]any{
		"root": root,
	})
	if err != nil {
		t.Fatal(err)
	}
	if s := globals["k"].String(); s != `"list"` {
		t.Fatalf("got %s", s)
	}
	if s := globals["total"].String(); s != "3" {
		t.Fatalf("got %s", s)
	}
	stats, ok := globals["stats"].(*starlark.Dict)
	if !ok {
		t.Fatalf("got %T", globals["stats"])
	}
	if v, _, _ := stats.Get(starlark.String("Terms")); v == nil {
		t.Fatal()
	}
}

func TestSessionErrors(t *testing.T) {
	_, session := newSession(t, terms.DefaultConfig())
	for src, expected := range map[string]string{
		`aterm.int(1).name`:                      "wrong term variant",
		`aterm.cons(aterm.int(1), aterm.int(2))`: "cons",
		`aterm.appl(1)`:                          "want string name",
		`aterm.list(1)`:                          "want term",
		`aterm.int(1)[0]`:                        "out of range",
	} {
		_, err := session.Eval("test.star", "x = "+src, nil)
		if err == nil {
			t.Fatalf("%s: should error", src)
		}
		if !strings.Contains(err.Error(), expected) {
			t.Fatalf("%s: got %v", src, err)
		}
	}
}

func TestSessionExhaustionPanics(t *testing.T) {
	config := terms.DefaultConfig()
	config.BlockSize = 16
	config.MaxSlots = 32
	_, session := newSession(t, config)
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("should panic")
		}
		err, ok := p.(error)
		if !ok || !errors.Is(err, terms.ErrExhausted) {
			t.Fatalf("got %v", p)
		}
	}()
	session.Eval("test.star", `
xs = [aterm.int(i) for i in range(1000)]
`, nil)
}

func TestSessionHoldsTerms(t *testing.T) {
	config := terms.DefaultConfig()
	config.BlockSize = 16
	config.MinCollectSlots = 0
	config.Debug = true
	engine, session := newSession(t, config)
	globals, err := session.Eval("test.star", `
x = aterm.appl("keep", aterm.int(-1))
for i in range(500):
    aterm.int(i)
aterm.collect()
`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if engine.Stats().Collections == 0 {
		t.Fatal("expecting collections")
	}
	x := globals["x"].(TermValue)
	if !x.Term.Valid() {
		t.Fatal("session term reclaimed")
	}

	session.Close()
	engine.Collect()
	if x.Term.Valid() {
		t.Fatal("should be reclaimed after close")
	}
	if x.Truth() {
		t.Fatal()
	}
	if _, err := x.Hash(); err == nil {
		t.Fatal("should error")
	}
}
