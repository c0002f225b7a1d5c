package procs

// Procs runs its elements in order.
type Procs[C any] []Proc[C]

var _ Proc[any] = Procs[any]{}

func (p Procs[C]) Run(ctx C) (Proc[C], error) {
	if len(p) == 0 {
		return nil, nil
	}
	proc, err := p[0].Run(ctx)
	if err != nil {
		return nil, err
	}
	if proc == nil {
		if len(p) == 1 {
			return nil, nil
		}
		return p[1:], nil
	}
	next := make(Procs[C], len(p))
	copy(next, p)
	next[0] = proc
	return next, nil
}

// Seq returns a Procs running fns in order.
func Seq[C any](fns ...func(C) error) Procs[C] {
	ret := make(Procs[C], 0, len(fns))
	for _, fn := range fns {
		ret = append(ret, Func[C](fn))
	}
	return ret
}

// Run drives proc until it finishes or fails.
func Run[C any](ctx C, proc Proc[C]) error {
	for proc != nil {
		var err error
		proc, err = proc.Run(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
