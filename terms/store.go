package terms

import (
	"bytes"
	"fmt"
)

// intern returns the canonical term for the structure held in e.probe, allocating it on a miss.
// The caller holds the lock and has filled e.probe.
func (e *Engine) intern() Term {
	p := &e.probe
	defer e.resetProbe()
	p.hash = p.computeHash()
	if stored, _, ok := e.interned.GetKey(p, p.hash); ok {
		return Term{n: stored, gen: stored.gen}
	}

	// children and symbol of the probe are roots while allocating
	e.probing = true
	n := e.allocate(len(p.args))

	n.kind = p.kind
	n.sym = p.sym
	n.bits = p.bits
	n.hash = p.hash
	copy(n.args, p.args)
	if p.kind == KindBlob {
		n.blob = bytes.Clone(p.blob)
		if n.blob == nil {
			n.blob = []byte{}
		}
	}
	e.interned.Put(n, n.hash, struct{}{})
	return Term{n: n, gen: n.gen}
}

func (e *Engine) resetProbe() {
	e.probe = node{}
	e.probing = false
}

// begin takes the lock for a mutating operation. The caller defers the unlock.
func (e *Engine) begin() {
	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		panic(ErrClosed)
	}
}

// Appl returns the application of sym to children. It panics with ErrArityMismatch when the number of children
// differs from the symbol arity.
func (e *Engine) Appl(sym *Symbol, children ...Term) Term {
	e.begin()
	defer e.lock.Unlock()
	e.checkSymbol(sym)
	if len(children) != sym.arity {
		panic(fmt.Errorf("%w: %v applied to %d arguments", ErrArityMismatch, sym, len(children)))
	}
	for _, child := range children {
		e.checkTerm(child)
	}
	e.probe.kind = KindAppl
	e.probe.sym = sym
	e.probe.args = children
	return e.intern()
}

func (e *Engine) Int(v int64) Term {
	e.begin()
	defer e.lock.Unlock()
	e.probe.kind = KindInt
	e.probe.bits = uint64(v)
	return e.intern()
}

// Real returns a real literal. Reals are equal only when their bits are equal, so 0.0 and -0.0 differ
// and every NaN payload is its own term.
func (e *Engine) Real(v float64) Term {
	e.begin()
	defer e.lock.Unlock()
	e.probe.kind = KindReal
	e.probe.bits = realBits(v)
	return e.intern()
}

// Cons returns the list cell with head and tail. tail must be a list.
func (e *Engine) Cons(head, tail Term) Term {
	e.begin()
	defer e.lock.Unlock()
	e.checkTerm(head)
	if kind := e.checkTerm(tail).kind; kind != KindList && kind != KindEmptyList {
		panic(fmt.Errorf("%w: list tail is %v", ErrWrongVariant, kind))
	}
	args := [2]Term{head, tail}
	e.probe.kind = KindList
	e.probe.args = args[:]
	return e.intern()
}

// Blob returns the blob term holding a copy of data.
func (e *Engine) Blob(data []byte) Term {
	e.begin()
	defer e.lock.Unlock()
	e.probe.kind = KindBlob
	e.probe.blob = data
	return e.intern()
}

func (e *Engine) Placeholder(t Term) Term {
	e.begin()
	defer e.lock.Unlock()
	e.checkTerm(t)
	args := [1]Term{t}
	e.probe.kind = KindPlaceholder
	e.probe.args = args[:]
	return e.intern()
}

func (e *Engine) EmptyList() Term {
	return e.emptyList
}

// List builds a list of items. Items are held as roots while the cells are built.
func (e *Engine) List(items ...Term) Term {
	if len(items) == 0 {
		return e.emptyList
	}
	v := e.NewVector()
	defer v.Release()
	for _, item := range items {
		v.Push(item)
	}
	v.Push(e.emptyList)
	for i := len(items) - 1; i >= 0; i-- {
		l := e.Cons(items[i], v.Pop())
		v.Push(l)
	}
	return v.Pop()
}

// Len returns the number of live terms, including the empty list.
func (e *Engine) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.interned.Len()
}
