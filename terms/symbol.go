package terms

import "fmt"

// Symbol is an interned function symbol. Symbols with equal name, arity and quoted flag are the same *Symbol
// within one Engine.
type Symbol struct {
	name      string
	arity     int
	quoted    bool
	hash      uint64
	marked    bool
	dead      bool
	protected int
}

func (s *Symbol) Name() string {
	return s.name
}

func (s *Symbol) Arity() int {
	return s.arity
}

func (s *Symbol) Quoted() bool {
	return s.quoted
}

// Hash returns the structural hash of the symbol.
func (s *Symbol) Hash() uint64 {
	return s.hash
}

// Alive reports whether the symbol has not been reclaimed.
func (s *Symbol) Alive() bool {
	return !s.dead
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s/%d", s.name, s.arity)
}

func symbolHash(name string, arity int, quoted bool) uint64 {
	h := hashString(prime3, name)
	h = mix(h, uint64(arity))
	if quoted {
		h = mix(h, 1)
	}
	return finish(h)
}

func symbolEqual(stored, probe *Symbol) bool {
	return stored.arity == probe.arity &&
		stored.quoted == probe.quoted &&
		stored.name == probe.name
}

// Symbol returns the interned symbol for name, arity and quoted.
func (e *Engine) Symbol(name string, arity int, quoted bool) *Symbol {
	if arity < 0 {
		panic(fmt.Errorf("%w: negative arity %d for %s", ErrArityMismatch, arity, name))
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	e.checkOpen()

	probe := &e.symbolProbe
	probe.name = name
	probe.arity = arity
	probe.quoted = quoted
	hash := symbolHash(name, arity, quoted)
	stored, _, ok := e.symbols.GetKey(probe, hash)
	probe.name = ""
	if ok {
		return stored
	}
	sym := &Symbol{
		name:   name,
		arity:  arity,
		quoted: quoted,
		hash:   hash,
	}
	e.symbols.Put(sym, hash, struct{}{})
	return sym
}

// ProtectSymbol keeps sym alive across collections until a matching UnprotectSymbol.
func (e *Engine) ProtectSymbol(sym *Symbol) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.checkSymbol(sym)
	sym.protected++
}

func (e *Engine) UnprotectSymbol(sym *Symbol) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if sym.protected <= 0 {
		panic(fmt.Errorf("%w: symbol %v", ErrDoubleUnprotect, sym))
	}
	sym.protected--
}

func (e *Engine) checkSymbol(sym *Symbol) {
	if sym == nil {
		panic(fmt.Errorf("%w: nil symbol", ErrDeadSymbol))
	}
	if sym.dead {
		panic(fmt.Errorf("%w: %v", ErrDeadSymbol, sym))
	}
}
