package baf

import (
	"fmt"
	"math"

	"github.com/reusee/aterm/terms"
)

type decoder struct {
	engine  *terms.Engine
	r       ByteReader
	symbols []*terms.Symbol
	// terms in pre-order, the zero Term marks one still being decoded
	table []terms.Term
}

var _ terms.Markable = new(decoder)

func (d *decoder) MarkTerms(mark func(terms.Term)) {
	for _, t := range d.table {
		if !t.IsZero() {
			mark(t)
		}
	}
}

type frame struct {
	index  int
	kind   terms.Kind
	sym    *terms.Symbol
	need   int
	args   []terms.Term
	offset int64
}

// Decode reads one BAF encoded term from r and interns it in e. Malformed input is reported as a
// *DecodeError. Decode stops after the root index, so streams may hold several encoded terms back to back.
// Terms interned before a failure are not protected and will be reclaimed by the next collection.
func Decode(e *terms.Engine, r ByteReader) (terms.Term, error) {
	d := &decoder{
		engine: e,
		r:      r,
	}
	e.RegisterMarkable(d)
	defer e.UnregisterMarkable(d)
	defer func() {
		for _, sym := range d.symbols {
			e.UnprotectSymbol(sym)
		}
	}()

	if err := d.readHeader(); err != nil {
		return terms.Term{}, err
	}
	if err := d.readSymbols(); err != nil {
		return terms.Term{}, err
	}
	root, err := d.readTerms()
	if err != nil {
		return terms.Term{}, err
	}

	offset := r.Offset()
	rootIndex, err := readUvarint(r)
	if err != nil {
		return terms.Term{}, err
	}
	if rootIndex >= uint64(len(d.table)) || d.table[rootIndex] != root {
		return terms.Term{}, &DecodeError{
			Offset: offset,
			Err:    fmt.Errorf("%w: %d", ErrBadRoot, rootIndex),
		}
	}
	return root, nil
}

func (d *decoder) readHeader() error {
	offset := d.r.Offset()
	magic, err := readUvarint(d.r)
	if err != nil {
		return err
	}
	if magic != Magic {
		return &DecodeError{
			Offset: offset,
			Err:    fmt.Errorf("%w: %#x", ErrBadMagic, magic),
		}
	}
	offset = d.r.Offset()
	major, err := readUvarint(d.r)
	if err != nil {
		return err
	}
	if major != MajorVersion {
		return &DecodeError{
			Offset: offset,
			Err:    fmt.Errorf("%w: %d", ErrBadVersion, major),
		}
	}
	// any minor version is readable
	if _, err := readUvarint(d.r); err != nil {
		return err
	}
	return nil
}

func (d *decoder) readSymbols() error {
	r := d.r
	count, err := readUvarint(r)
	if err != nil {
		return err
	}
	for range count {
		nameLen, err := readUvarint(r)
		if err != nil {
			return err
		}
		name, err := readBytes(r, nameLen)
		if err != nil {
			return err
		}
		offset := r.Offset()
		arity, err := readUvarint(r)
		if err != nil {
			return err
		}
		if arity > math.MaxInt32 {
			return &DecodeError{
				Offset: offset,
				Err:    fmt.Errorf("%w: arity %d", ErrTooLarge, arity),
			}
		}
		offset = r.Offset()
		flag, err := readByte(r)
		if err != nil {
			return err
		}
		if flag > 1 {
			return &DecodeError{
				Offset: offset,
				Err:    fmt.Errorf("%w: %d", ErrBadQuotedFlag, flag),
			}
		}
		sym := d.engine.Symbol(string(name), int(arity), flag == 1)
		d.engine.ProtectSymbol(sym)
		d.symbols = append(d.symbols, sym)
	}
	return nil
}

func (d *decoder) reserve() int {
	d.table = append(d.table, terms.Term{})
	return len(d.table) - 1
}

func (d *decoder) readTerms() (terms.Term, error) {
	r := d.r
	e := d.engine
	var stack []*frame

	for {
		offset := r.Offset()
		tag, err := readByte(r)
		if err != nil {
			return terms.Term{}, err
		}

		var done terms.Term
		complete := false

		switch tag {

		case tagRef:
			index, err := readUvarint(r)
			if err != nil {
				return terms.Term{}, err
			}
			if index >= uint64(len(d.table)) || d.table[index].IsZero() {
				return terms.Term{}, &DecodeError{
					Offset: offset,
					Err:    fmt.Errorf("%w: %d of %d", ErrBackReference, index, len(d.table)),
				}
			}
			done = d.table[index]
			complete = true

		case tagInt:
			index := d.reserve()
			v, err := readUvarint(r)
			if err != nil {
				return terms.Term{}, err
			}
			done = e.Int(unzigzag(v))
			d.table[index] = done
			complete = true

		case tagReal:
			index := d.reserve()
			bits, err := readUint64(r)
			if err != nil {
				return terms.Term{}, err
			}
			done = e.Real(math.Float64frombits(bits))
			d.table[index] = done
			complete = true

		case tagEmptyList:
			index := d.reserve()
			done = e.EmptyList()
			d.table[index] = done
			complete = true

		case tagBlob:
			index := d.reserve()
			n, err := readUvarint(r)
			if err != nil {
				return terms.Term{}, err
			}
			data, err := readBytes(r, n)
			if err != nil {
				return terms.Term{}, err
			}
			done = e.Blob(data)
			d.table[index] = done
			complete = true

		case tagAppl:
			index := d.reserve()
			symIndex, err := readUvarint(r)
			if err != nil {
				return terms.Term{}, err
			}
			if symIndex >= uint64(len(d.symbols)) {
				return terms.Term{}, &DecodeError{
					Offset: offset,
					Err:    fmt.Errorf("%w: %d of %d", ErrSymbolIndex, symIndex, len(d.symbols)),
				}
			}
			sym := d.symbols[symIndex]
			count, err := readUvarint(r)
			if err != nil {
				return terms.Term{}, err
			}
			if count != uint64(sym.Arity()) {
				return terms.Term{}, &DecodeError{
					Offset: offset,
					Err:    fmt.Errorf("%w: %v with %d children", ErrArityMismatch, sym, count),
				}
			}
			if count == 0 {
				done = e.Appl(sym)
				d.table[index] = done
				complete = true
			} else {
				stack = append(stack, &frame{
					index:  index,
					kind:   terms.KindAppl,
					sym:    sym,
					need:   int(count),
					offset: offset,
				})
			}

		case tagList:
			stack = append(stack, &frame{
				index:  d.reserve(),
				kind:   terms.KindList,
				need:   2,
				offset: offset,
			})

		case tagPlaceholder:
			stack = append(stack, &frame{
				index:  d.reserve(),
				kind:   terms.KindPlaceholder,
				need:   1,
				offset: offset,
			})

		default:
			return terms.Term{}, &DecodeError{
				Offset: offset,
				Err:    fmt.Errorf("%w: %d", ErrBadTag, tag),
			}
		}

		for complete {
			if len(stack) == 0 {
				return done, nil
			}
			top := stack[len(stack)-1]
			top.args = append(top.args, done)
			if len(top.args) < top.need {
				break
			}
			stack = stack[:len(stack)-1]
			done, err = d.build(top)
			if err != nil {
				return terms.Term{}, err
			}
			d.table[top.index] = done
		}
	}
}

func (d *decoder) build(f *frame) (terms.Term, error) {
	e := d.engine
	switch f.kind {
	case terms.KindList:
		if !f.args[1].IsList() {
			return terms.Term{}, &DecodeError{
				Offset: f.offset,
				Err:    ErrBadListTail,
			}
		}
		return e.Cons(f.args[0], f.args[1]), nil
	case terms.KindPlaceholder:
		return e.Placeholder(f.args[0]), nil
	}
	return e.Appl(f.sym, f.args...), nil
}
