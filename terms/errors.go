package terms

import "errors"

var (
	ErrWrongVariant    = errors.New("wrong term variant")
	ErrArityMismatch   = errors.New("arity mismatch")
	ErrIndexOutOfRange = errors.New("child index out of range")
	ErrStaleTerm       = errors.New("stale term")
	ErrDeadSymbol      = errors.New("dead function symbol")
	ErrDoubleUnprotect = errors.New("root already unprotected")
	ErrNotRegistered   = errors.New("markable not registered")
	ErrExhausted       = errors.New("term storage exhausted")
	ErrClosed          = errors.New("engine closed")
	ErrCorrupted       = errors.New("term store corrupted")
	ErrBadConfig       = errors.New("bad engine config")
	ErrSyntax          = errors.New("syntax error")
)
