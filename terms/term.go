package terms

import (
	"fmt"
	"math"
)

// Term is a handle to a canonical term. Handles to structurally equal live terms compare equal with ==.
// The zero Term is not a valid term.
type Term struct {
	n   *node
	gen uint32
}

func (t Term) node() *node {
	n := t.n
	if n == nil {
		panic(fmt.Errorf("%w: zero term", ErrStaleTerm))
	}
	if n.gen != t.gen || n.flags&flagLive == 0 {
		panic(fmt.Errorf("%w: slot reclaimed by a collection", ErrStaleTerm))
	}
	return n
}

func (t Term) expect(kind Kind) *node {
	n := t.node()
	if n.kind != kind {
		panic(fmt.Errorf("%w: want %v, got %v", ErrWrongVariant, kind, n.kind))
	}
	return n
}

// IsZero reports whether t is the zero Term.
func (t Term) IsZero() bool {
	return t.n == nil
}

// Valid reports whether t refers to a term that has not been reclaimed.
func (t Term) Valid() bool {
	return t.n != nil && t.n.gen == t.gen && t.n.flags&flagLive != 0
}

func (t Term) Kind() Kind {
	return t.node().kind
}

// Hash returns the cached structural hash.
func (t Term) Hash() uint64 {
	return t.node().hash
}

func (t Term) Symbol() *Symbol {
	return t.expect(KindAppl).sym
}

func (t Term) Arity() int {
	return t.expect(KindAppl).sym.arity
}

func (t Term) Arg(i int) Term {
	n := t.expect(KindAppl)
	if i < 0 || i >= len(n.args) {
		panic(fmt.Errorf("%w: %d of %v", ErrIndexOutOfRange, i, n.sym))
	}
	return n.args[i]
}

// Args returns a copy of the children of an application.
func (t Term) Args() []Term {
	n := t.expect(KindAppl)
	ret := make([]Term, len(n.args))
	copy(ret, n.args)
	return ret
}

func (t Term) Int() int64 {
	return int64(t.expect(KindInt).bits)
}

func (t Term) Real() float64 {
	return math.Float64frombits(t.expect(KindReal).bits)
}

// Blob returns the payload of a blob. The returned slice must not be modified.
func (t Term) Blob() []byte {
	return t.expect(KindBlob).blob
}

func (t Term) Head() Term {
	return t.expect(KindList).args[0]
}

func (t Term) Tail() Term {
	return t.expect(KindList).args[1]
}

// Inner returns the term wrapped by a placeholder.
func (t Term) Inner() Term {
	return t.expect(KindPlaceholder).args[0]
}

func (t Term) IsEmptyList() bool {
	return t.node().kind == KindEmptyList
}

// IsList reports whether t is a list cell or the empty list.
func (t Term) IsList() bool {
	kind := t.node().kind
	return kind == KindList || kind == KindEmptyList
}

// NumChildren returns the number of child terms for any variant.
func (t Term) NumChildren() int {
	return len(t.node().args)
}

// Child returns the i-th child for any variant: application arguments, list head and tail, placeholder content.
func (t Term) Child(i int) Term {
	n := t.node()
	if i < 0 || i >= len(n.args) {
		panic(fmt.Errorf("%w: %d of %v", ErrIndexOutOfRange, i, n.kind))
	}
	return n.args[i]
}

// Len returns the number of elements of a list.
func (t Term) Len() int {
	n := 0
	for l := t; ; n++ {
		ln := l.node()
		switch ln.kind {
		case KindEmptyList:
			return n
		case KindList:
			l = ln.args[1]
		default:
			panic(fmt.Errorf("%w: want list, got %v", ErrWrongVariant, ln.kind))
		}
	}
}

// Elements returns the elements of a list.
func (t Term) Elements() []Term {
	var ret []Term
	for l := t; !l.IsEmptyList(); l = l.Tail() {
		ret = append(ret, l.Head())
	}
	return ret
}
