package terms

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	f := e.Symbol("f", 2, false)
	g := e.Symbol("g'", 1, false)
	quoted := e.Symbol("a \"b\"\n", 1, true)
	quotedConst := e.Symbol("", 0, true)
	nil0 := e.Symbol("nil", 0, false)
	wide := e.Symbol("w", MaxInlineArity+2, false)

	wideArgs := make([]Term, MaxInlineArity+2)
	for i := range wideArgs {
		wideArgs[i] = e.Int(int64(i))
	}

	for _, term := range []Term{
		e.Int(0),
		e.Int(math.MinInt64),
		e.Int(math.MaxInt64),
		e.Real(1),
		e.Real(-2.5),
		e.Real(1e21),
		e.Real(1e-300),
		e.Real(math.Copysign(0, -1)),
		e.Real(math.Inf(1)),
		e.Real(math.Inf(-1)),
		e.Blob(nil),
		e.Blob([]byte{0, 0xde, 0xad, 0xff}),
		e.EmptyList(),
		e.List(e.Int(1), e.Appl(nil0), e.List(e.List())),
		e.Appl(f, e.Appl(quotedConst), e.Placeholder(e.Appl(g, e.Int(-3)))),
		e.Appl(quoted, e.Placeholder(e.List(e.Real(0.5)))),
		e.Appl(wide, wideArgs...),
		e.Placeholder(e.Placeholder(e.EmptyList())),
	} {
		text := term.String()
		got, err := ParseString(e, text)
		if err != nil {
			t.Fatalf("%s: %v", text, err)
		}
		if got != term {
			t.Fatalf("%s: got %s", text, got)
		}
	}
}

func TestParseReader(t *testing.T) {
	e := newTestEngine(t)
	got, err := Parse(e, strings.NewReader(" f ( a ,\n[ 1 , 2 ]\t) "))
	if err != nil {
		t.Fatal(err)
	}
	if s := got.String(); s != "f(a,[1,2])" {
		t.Fatalf("got %s", s)
	}
	if got.Symbol() != e.Symbol("f", 2, false) {
		t.Fatal()
	}

	// empty argument lists read as constants
	got, err = ParseString(e, "c()")
	if err != nil {
		t.Fatal(err)
	}
	if got != e.Appl(e.Symbol("c", 0, false)) {
		t.Fatalf("got %s", got)
	}
}

func TestParseErrors(t *testing.T) {
	e := newTestEngine(t)
	for src, offset := range map[string]int{
		"":                     0,
		"  ":                   2,
		"f(":                   2,
		"f(a,)":                4,
		"f(a))":                4,
		"[1,":                  3,
		"[1 2]":                3,
		"<1,2>":                2,
		"#abc":                 0,
		"99999999999999999999": 0,
		"1e":                   0,
		"-":                    0,
		`"abc`:                 0,
		"f(@)":                 2,
		"[a,b,c(d,<e>,#zz)]":   14,
		"a b":                  2,
		"f(g(h(i(j(k)))),[1,]": 19,
	} {
		_, err := ParseString(e, src)
		if !errors.Is(err, ErrSyntax) {
			t.Fatalf("%q: got %v", src, err)
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%q: got %T", src, err)
		}
		if parseErr.Offset != offset {
			t.Fatalf("%q: got offset %d, want %d", src, parseErr.Offset, offset)
		}
	}

	stats := e.Stats()
	if stats.Markables != 0 {
		t.Fatalf("got %v", stats.Markables)
	}
	if n := e.Roots(); n != 0 {
		t.Fatalf("got %v", n)
	}
}

func TestParseDeep(t *testing.T) {
	e := newTestEngine(t)
	const depth = 100_000
	src := strings.Repeat("s(", depth) + "z" + strings.Repeat(")", depth)
	got, err := ParseString(e, src)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for got.Symbol().Name() == "s" {
		got = got.Arg(0)
		n++
	}
	if n != depth {
		t.Fatalf("got %v", n)
	}

	got, err = ParseString(e, strings.Repeat("[", depth)+strings.Repeat("]", depth))
	if err != nil {
		t.Fatal(err)
	}
	n = 0
	for !got.IsEmptyList() {
		got = got.Head()
		n++
	}
	if n != depth-1 {
		t.Fatalf("got %v", n)
	}
}

func TestParseSurvivesCollection(t *testing.T) {
	e := newTestEngine(t, func(config *Config) {
		config.BlockSize = 16
		config.MinCollectSlots = 0
		config.Debug = true
	})
	var b strings.Builder
	b.WriteString("pair([")
	for i := range 1000 {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("g(")
		b.WriteString(strings.Repeat("1", i%18+1))
		b.WriteString(")")
	}
	b.WriteString("],#00ff)")

	got, err := ParseString(e, b.String())
	if err != nil {
		t.Fatal(err)
	}
	if e.Stats().Collections == 0 {
		t.Fatal("expecting collections")
	}
	if got.String() != b.String() {
		t.Fatal("mismatch")
	}
}
