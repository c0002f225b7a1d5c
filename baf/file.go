package baf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/reusee/aterm/terms"
)

func Marshal(t terms.Term) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Encode(NewBufferWriter(buf), t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeAll decodes one term like Decode and fails with ErrTrailingData unless the stream ends right after it.
func DecodeAll(e *terms.Engine, r ByteReader) (terms.Term, error) {
	t, err := Decode(e, r)
	if err != nil {
		return terms.Term{}, err
	}
	offset := r.Offset()
	if _, err := r.ReadByte(); err == nil {
		return terms.Term{}, &DecodeError{
			Offset: offset,
			Err:    ErrTrailingData,
		}
	} else if !errors.Is(err, io.EOF) {
		return terms.Term{}, err
	}
	return t, nil
}

func Unmarshal(e *terms.Engine, data []byte) (terms.Term, error) {
	return DecodeAll(e, NewBytesReader(data))
}

func WriteFile(path string, t terms.Term) (err error) {
	w, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()
	return Encode(w, t)
}

func ReadFile(e *terms.Engine, path string) (_ terms.Term, err error) {
	r, err := OpenFile(path)
	if err != nil {
		return terms.Term{}, err
	}
	defer func() {
		err = errors.Join(err, r.Close())
	}()
	t, err := DecodeAll(e, r)
	if err != nil {
		return terms.Term{}, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}
