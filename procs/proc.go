package procs

// Proc is one step of a staged computation over C. Run returns the step to continue with, nil when done.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

// Func is a single step Proc.
type Func[C any] func(ctx C) error

var _ Proc[any] = Func[any](nil)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return nil, f(ctx)
}
