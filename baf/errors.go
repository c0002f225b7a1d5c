package baf

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated      = errors.New("truncated stream")
	ErrBadMagic       = errors.New("bad magic")
	ErrBadVersion     = errors.New("unsupported version")
	ErrBadTag         = errors.New("bad term tag")
	ErrSymbolIndex    = errors.New("symbol index out of range")
	ErrBackReference  = errors.New("bad back-reference")
	ErrArityMismatch  = errors.New("arity mismatch")
	ErrBadQuotedFlag  = errors.New("bad quoted flag")
	ErrBadListTail    = errors.New("list tail is not a list")
	ErrBadRoot        = errors.New("bad root index")
	ErrVarintOverflow = errors.New("varint overflows 64 bits")
	ErrTooLarge       = errors.New("length too large")
	ErrTrailingData   = errors.New("trailing data after root index")
)

// DecodeError reports malformed input at a byte offset of the stream.
type DecodeError struct {
	Offset int64
	Err    error
}

func (d *DecodeError) Error() string {
	return fmt.Sprintf("baf: offset %d: %v", d.Offset, d.Err)
}

func (d *DecodeError) Unwrap() error {
	return d.Err
}
