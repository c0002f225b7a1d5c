package debugs

import (
	"errors"
	"fmt"

	"github.com/reusee/aterm/terms"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Session binds starlark code to an engine. Terms built from starlark stay protected until Close.
type Session struct {
	engine *terms.Engine
	held   *terms.Vector
	closed bool
}

func NewSession(engine *terms.Engine) *Session {
	return &Session{
		engine: engine,
		held:   engine.NewVector(),
	}
}

func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.held.Release()
}

func (s *Session) hold(t terms.Term) starlark.Value {
	s.held.Push(t)
	return TermValue{Term: t}
}

func toTerm(v starlark.Value) (terms.Term, error) {
	tv, ok := v.(TermValue)
	if !ok {
		return terms.Term{}, fmt.Errorf("want term, got %s", v.Type())
	}
	return tv.Term, nil
}

func toTerms(values starlark.Tuple) ([]terms.Term, error) {
	ret := make([]terms.Term, 0, len(values))
	for _, v := range values {
		t, err := toTerm(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, t)
	}
	return ret, nil
}

// inputError returns the error carried by an engine panic caused by bad arguments. Other panics, exhaustion
// and corruption among them, are not input errors and must keep unwinding.
func inputError(p any) (error, bool) {
	err, ok := p.(error)
	if !ok {
		return nil, false
	}
	for _, target := range []error{
		terms.ErrWrongVariant,
		terms.ErrArityMismatch,
		terms.ErrIndexOutOfRange,
		terms.ErrStaleTerm,
		terms.ErrDeadSymbol,
	} {
		if errors.Is(err, target) {
			return err, true
		}
	}
	return nil, false
}

// builtin converts engine panics on bad arguments into starlark errors.
func builtin(name string, fn func(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (ret starlark.Value, err error) {
		defer func() {
			if p := recover(); p != nil {
				e, ok := inputError(p)
				if !ok {
					panic(p)
				}
				err = fmt.Errorf("%s: %w", name, e)
			}
		}()
		return fn(thread, args, kwargs)
	})
}

// Module returns the "aterm" starlark module.
func (s *Session) Module() *starlarkstruct.Module {
	e := s.engine
	return &starlarkstruct.Module{
		Name: "aterm",
		Members: starlark.StringDict{

			"appl": builtin("appl", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if len(args) == 0 {
					return nil, fmt.Errorf("appl: missing symbol name")
				}
				name, ok := starlark.AsString(args[0])
				if !ok {
					return nil, fmt.Errorf("appl: want string name, got %s", args[0].Type())
				}
				var quoted bool
				if err := starlark.UnpackArgs("appl", nil, kwargs, "quoted?", &quoted); err != nil {
					return nil, err
				}
				children, err := toTerms(args[1:])
				if err != nil {
					return nil, err
				}
				sym := e.Symbol(name, len(children), quoted)
				return s.hold(e.Appl(sym, children...)), nil
			}),

			"int": builtin("int", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var v int64
				if err := starlark.UnpackPositionalArgs("int", args, kwargs, 1, &v); err != nil {
					return nil, err
				}
				return s.hold(e.Int(v)), nil
			}),

			"real": builtin("real", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var v float64
				if err := starlark.UnpackPositionalArgs("real", args, kwargs, 1, &v); err != nil {
					return nil, err
				}
				return s.hold(e.Real(v)), nil
			}),

			"blob": builtin("blob", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var v starlark.Value
				if err := starlark.UnpackPositionalArgs("blob", args, kwargs, 1, &v); err != nil {
					return nil, err
				}
				data, ok := starlark.AsString(v)
				if !ok {
					return nil, fmt.Errorf("blob: want bytes or string, got %s", v.Type())
				}
				return s.hold(e.Blob([]byte(data))), nil
			}),

			"placeholder": builtin("placeholder", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var v starlark.Value
				if err := starlark.UnpackPositionalArgs("placeholder", args, kwargs, 1, &v); err != nil {
					return nil, err
				}
				t, err := toTerm(v)
				if err != nil {
					return nil, err
				}
				return s.hold(e.Placeholder(t)), nil
			}),

			"cons": builtin("cons", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var head, tail starlark.Value
				if err := starlark.UnpackPositionalArgs("cons", args, kwargs, 2, &head, &tail); err != nil {
					return nil, err
				}
				ts, err := toTerms(starlark.Tuple{head, tail})
				if err != nil {
					return nil, err
				}
				return s.hold(e.Cons(ts[0], ts[1])), nil
			}),

			"list": builtin("list", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				items, err := toTerms(args)
				if err != nil {
					return nil, err
				}
				return s.hold(e.List(items...)), nil
			}),

			"empty": TermValue{Term: e.EmptyList()},

			"collect": builtin("collect", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				return toStarlarkValue(e.Collect()), nil
			}),

			"stats": builtin("stats", func(_ *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				return toStarlarkValue(e.Stats()), nil
			}),
		},
	}
}

// Globals converts values for starlark and adds the aterm module.
func (s *Session) Globals(values map[string]any) starlark.StringDict {
	globals := make(starlark.StringDict, len(values)+1)
	for name, value := range values {
		globals[name] = toStarlarkValue(value)
	}
	globals["aterm"] = s.Module()
	return globals
}

// Eval runs src and returns its global bindings.
func (s *Session) Eval(name string, src string, values map[string]any) (starlark.StringDict, error) {
	thread := &starlark.Thread{
		Name: name,
	}
	return starlark.ExecFileOptions(
		fileOptions,
		thread,
		name,
		src,
		s.Globals(values),
	)
}
