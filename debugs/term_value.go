package debugs

import (
	"fmt"

	"github.com/reusee/aterm/terms"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// TermValue exposes a term to starlark. Children are reachable by index, variant payloads by attribute.
type TermValue struct {
	Term terms.Term
}

var (
	_ starlark.Value      = TermValue{}
	_ starlark.HasAttrs   = TermValue{}
	_ starlark.Indexable  = TermValue{}
	_ starlark.Comparable = TermValue{}
)

func (v TermValue) String() string {
	return v.Term.String()
}

func (v TermValue) Type() string {
	return "term"
}

func (v TermValue) Freeze() {}

func (v TermValue) Truth() starlark.Bool {
	return starlark.Bool(v.Term.Valid())
}

func (v TermValue) Hash() (uint32, error) {
	if !v.Term.Valid() {
		return 0, terms.ErrStaleTerm
	}
	h := v.Term.Hash()
	return uint32(h ^ h>>32), nil
}

func (v TermValue) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	other := y.(TermValue)
	switch op {
	case syntax.EQL:
		return v.Term == other.Term, nil
	case syntax.NEQ:
		return v.Term != other.Term, nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", v.Type(), op, y.Type())
}

func (v TermValue) Len() int {
	if !v.Term.Valid() {
		return 0
	}
	return v.Term.NumChildren()
}

func (v TermValue) Index(i int) starlark.Value {
	return TermValue{Term: v.Term.Child(i)}
}

var termAttrs = []string{
	"args",
	"arity",
	"blob",
	"elements",
	"hash",
	"head",
	"inner",
	"int",
	"kind",
	"name",
	"quoted",
	"real",
	"tail",
	"valid",
}

func (v TermValue) AttrNames() []string {
	return termAttrs
}

func (v TermValue) Attr(name string) (ret starlark.Value, err error) {
	// accessors panic on stale handles and variant mismatches
	defer func() {
		if p := recover(); p != nil {
			e, ok := inputError(p)
			if !ok {
				panic(p)
			}
			err = e
		}
	}()

	t := v.Term
	switch name {
	case "valid":
		return starlark.Bool(t.Valid()), nil
	case "kind":
		return starlark.String(t.Kind().String()), nil
	case "hash":
		return starlark.MakeUint64(t.Hash()), nil
	case "name":
		return starlark.String(t.Symbol().Name()), nil
	case "arity":
		return starlark.MakeInt(t.Arity()), nil
	case "quoted":
		return starlark.Bool(t.Symbol().Quoted()), nil
	case "args":
		return termList(t.Args()), nil
	case "int":
		return starlark.MakeInt64(t.Int()), nil
	case "real":
		return starlark.Float(t.Real()), nil
	case "blob":
		return starlark.Bytes(t.Blob()), nil
	case "head":
		return TermValue{Term: t.Head()}, nil
	case "tail":
		return TermValue{Term: t.Tail()}, nil
	case "inner":
		return TermValue{Term: t.Inner()}, nil
	case "elements":
		return termList(t.Elements()), nil
	}
	return nil, nil
}

func termList(ts []terms.Term) *starlark.List {
	elems := make([]starlark.Value, len(ts))
	for i, t := range ts {
		elems[i] = TermValue{Term: t}
	}
	return starlark.NewList(elems)
}
