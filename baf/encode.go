package baf

import (
	"github.com/reusee/aterm/hashtables"
	"github.com/reusee/aterm/terms"
)

type encoder struct {
	w       ByteWriter
	symbols *hashtables.Table[*terms.Symbol, int]
	order   []*terms.Symbol
	indices *hashtables.Table[terms.Term, int]
	next    int
}

func sameTerm(a, b terms.Term) bool {
	return a == b
}

func sameSymbol(a, b *terms.Symbol) bool {
	return a == b
}

// Encode writes t and every term reachable from it to w in BAF format and flushes w.
// Sub-terms shared in memory are written once and referenced afterwards.
func Encode(w ByteWriter, t terms.Term) error {
	enc := &encoder{
		w:       w,
		symbols: hashtables.New[*terms.Symbol, int](sameSymbol),
		indices: hashtables.New[terms.Term, int](sameTerm),
	}
	enc.collectSymbols(t)

	if err := enc.writeHeader(); err != nil {
		return err
	}
	if err := enc.writeSymbols(); err != nil {
		return err
	}
	if err := enc.writeTerms(t); err != nil {
		return err
	}
	// trailer
	rootIndex, _ := enc.indices.Get(t, t.Hash())
	if err := writeUvarint(w, uint64(rootIndex)); err != nil {
		return err
	}
	return w.Flush()
}

func (enc *encoder) collectSymbols(root terms.Term) {
	visited := hashtables.New[terms.Term, struct{}](sameTerm)
	stack := []terms.Term{root}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited.Get(t, t.Hash()); ok {
			continue
		}
		visited.Put(t, t.Hash(), struct{}{})
		if t.Kind() == terms.KindAppl {
			sym := t.Symbol()
			if _, ok := enc.symbols.Get(sym, sym.Hash()); !ok {
				enc.symbols.Put(sym, sym.Hash(), len(enc.order))
				enc.order = append(enc.order, sym)
			}
		}
		for i := t.NumChildren() - 1; i >= 0; i-- {
			stack = append(stack, t.Child(i))
		}
	}
}

func (enc *encoder) writeHeader() error {
	for _, v := range []uint64{Magic, MajorVersion, MinorVersion} {
		if err := writeUvarint(enc.w, v); err != nil {
			return err
		}
	}
	return nil
}

func (enc *encoder) writeSymbols() error {
	w := enc.w
	if err := writeUvarint(w, uint64(len(enc.order))); err != nil {
		return err
	}
	for _, sym := range enc.order {
		name := sym.Name()
		if err := writeUvarint(w, uint64(len(name))); err != nil {
			return err
		}
		if _, err := w.Write([]byte(name)); err != nil {
			return err
		}
		if err := writeUvarint(w, uint64(sym.Arity())); err != nil {
			return err
		}
		var quoted byte
		if sym.Quoted() {
			quoted = 1
		}
		if err := w.WriteByte(quoted); err != nil {
			return err
		}
	}
	return nil
}

func (enc *encoder) writeTerms(root terms.Term) error {
	w := enc.w
	stack := []terms.Term{root}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if index, ok := enc.indices.Get(t, t.Hash()); ok {
			if err := w.WriteByte(tagRef); err != nil {
				return err
			}
			if err := writeUvarint(w, uint64(index)); err != nil {
				return err
			}
			continue
		}
		enc.indices.Put(t, t.Hash(), enc.next)
		enc.next++

		var err error
		switch t.Kind() {

		case terms.KindAppl:
			sym := t.Symbol()
			symIndex, _ := enc.symbols.Get(sym, sym.Hash())
			err = w.WriteByte(tagAppl)
			if err == nil {
				err = writeUvarint(w, uint64(symIndex))
			}
			if err == nil {
				err = writeUvarint(w, uint64(t.NumChildren()))
			}

		case terms.KindInt:
			err = w.WriteByte(tagInt)
			if err == nil {
				err = writeUvarint(w, zigzag(t.Int()))
			}

		case terms.KindReal:
			err = w.WriteByte(tagReal)
			if err == nil {
				err = writeUint64(w, realToBits(t.Real()))
			}

		case terms.KindList:
			err = w.WriteByte(tagList)

		case terms.KindEmptyList:
			err = w.WriteByte(tagEmptyList)

		case terms.KindBlob:
			data := t.Blob()
			err = w.WriteByte(tagBlob)
			if err == nil {
				err = writeUvarint(w, uint64(len(data)))
			}
			if err == nil {
				_, err = w.Write(data)
			}

		case terms.KindPlaceholder:
			err = w.WriteByte(tagPlaceholder)

		}
		if err != nil {
			return err
		}

		for i := t.NumChildren() - 1; i >= 0; i-- {
			stack = append(stack, t.Child(i))
		}
	}
	return nil
}
