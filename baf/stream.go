package baf

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
)

// ByteWriter is the output side of the codec.
type ByteWriter interface {
	io.Writer
	io.ByteWriter
	// Written returns the number of bytes written so far.
	Written() int64
	Flush() error
}

// ByteReader is the input side of the codec.
type ByteReader interface {
	io.ByteReader
	// ReadFull fills p or fails with io.EOF or io.ErrUnexpectedEOF.
	ReadFull(p []byte) error
	// Offset returns the number of bytes consumed so far.
	Offset() int64
}

type byteSink interface {
	io.Writer
	io.ByteWriter
}

type Writer struct {
	out     byteSink
	flusher interface{ Flush() error }
	closer  io.Closer
	n       int64
}

var _ ByteWriter = new(Writer)

// NewWriter returns a buffered writer on w. Flush must be called to push the buffered bytes.
func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	return &Writer{
		out:     bw,
		flusher: bw,
	}
}

// NewBufferWriter returns a writer appending to buf.
func NewBufferWriter(buf *bytes.Buffer) *Writer {
	return &Writer{
		out: buf,
	}
}

// CreateFile returns a writer on a newly created file. Close flushes and closes the file.
func CreateFile(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.out.Write(p)
	w.n += int64(n)
	return n, err
}

func (w *Writer) WriteByte(b byte) error {
	if err := w.out.WriteByte(b); err != nil {
		return err
	}
	w.n++
	return nil
}

func (w *Writer) Written() int64 {
	return w.n
}

func (w *Writer) Flush() error {
	if w.flusher == nil {
		return nil
	}
	return w.flusher.Flush()
}

func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		err = errors.Join(err, w.closer.Close())
	}
	return err
}

type byteSource interface {
	io.Reader
	io.ByteReader
}

type Reader struct {
	in     byteSource
	closer io.Closer
	n      int64
}

var _ ByteReader = new(Reader)

func NewReader(r io.Reader) *Reader {
	if src, ok := r.(byteSource); ok {
		return &Reader{
			in: src,
		}
	}
	return &Reader{
		in: bufio.NewReader(r),
	}
}

// NewBytesReader returns a reader over data.
func NewBytesReader(data []byte) *Reader {
	return &Reader{
		in: bytes.NewReader(data),
	}
}

func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

func (r *Reader) ReadByte() (byte, error) {
	b, err := r.in.ReadByte()
	if err != nil {
		return 0, err
	}
	r.n++
	return b, nil
}

func (r *Reader) ReadFull(p []byte) error {
	n, err := io.ReadFull(r.in, p)
	r.n += int64(n)
	return err
}

func (r *Reader) Offset() int64 {
	return r.n
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
