package terms

import "fmt"

// Markable is implemented by containers that hold terms outside of other terms. A registered Markable reports
// every term it holds when the engine marks. MarkTerms must not call back into the engine.
//
// Implementations must be comparable, typically pointer types.
type Markable interface {
	MarkTerms(mark func(Term))
}

func (e *Engine) RegisterMarkable(m Markable) {
	e.begin()
	defer e.lock.Unlock()
	e.markables = append(e.markables, m)
}

func (e *Engine) UnregisterMarkable(m Markable) {
	e.lock.Lock()
	defer e.lock.Unlock()
	for i := len(e.markables) - 1; i >= 0; i-- {
		if e.markables[i] == m {
			last := len(e.markables) - 1
			copy(e.markables[i:], e.markables[i+1:])
			e.markables[last] = nil
			e.markables = e.markables[:last]
			return
		}
	}
	if e.closed {
		return
	}
	panic(fmt.Errorf("%w: %T", ErrNotRegistered, m))
}

// Vector is a growable term container whose elements are roots until Release.
type Vector struct {
	engine *Engine
	terms  []Term
}

var _ Markable = new(Vector)

// NewVector returns an empty Vector registered with e.
func (e *Engine) NewVector() *Vector {
	v := &Vector{
		engine: e,
	}
	e.RegisterMarkable(v)
	return v
}

func (v *Vector) MarkTerms(mark func(Term)) {
	for _, t := range v.terms {
		if t.n != nil {
			mark(t)
		}
	}
}

func (v *Vector) Push(t Term) {
	v.engine.lock.Lock()
	defer v.engine.lock.Unlock()
	if t.n != nil {
		t.node()
	}
	v.terms = append(v.terms, t)
}

// Pop removes and returns the last element. It panics on an empty vector.
func (v *Vector) Pop() Term {
	v.engine.lock.Lock()
	defer v.engine.lock.Unlock()
	last := len(v.terms) - 1
	if last < 0 {
		panic(fmt.Errorf("%w: pop from empty vector", ErrIndexOutOfRange))
	}
	t := v.terms[last]
	v.terms[last] = Term{}
	v.terms = v.terms[:last]
	return t
}

func (v *Vector) Get(i int) Term {
	return v.terms[i]
}

func (v *Vector) Set(i int, t Term) {
	v.engine.lock.Lock()
	defer v.engine.lock.Unlock()
	if t.n != nil {
		t.node()
	}
	v.terms[i] = t
}

func (v *Vector) Len() int {
	return len(v.terms)
}

// Truncate drops elements from index n on.
func (v *Vector) Truncate(n int) {
	v.engine.lock.Lock()
	defer v.engine.lock.Unlock()
	clear(v.terms[n:])
	v.terms = v.terms[:n]
}

// Release unregisters the vector. Its terms are no longer roots.
func (v *Vector) Release() {
	v.engine.UnregisterMarkable(v)
	v.terms = nil
}
