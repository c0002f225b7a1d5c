package baf

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/reusee/aterm/terms"
)

func stream(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func expectClean(t *testing.T, e *terms.Engine) {
	t.Helper()
	if n := e.Roots(); n != 0 {
		t.Fatalf("got %d roots", n)
	}
	e.Collect()
	stats := e.Stats()
	if stats.Markables != 0 {
		t.Fatalf("got %d markables", stats.Markables)
	}
	if stats.Symbols != 0 {
		t.Fatalf("got %d symbols", stats.Symbols)
	}
	if stats.Terms != 1 {
		t.Fatalf("got %d terms", stats.Terms)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, c := range []struct {
		name   string
		data   []byte
		err    error
		offset int64
	}{
		{
			name:   "empty",
			data:   nil,
			err:    ErrTruncated,
			offset: 0,
		},
		{
			name:   "magic",
			data:   stream([]byte{0x01, MajorVersion, MinorVersion, 0}),
			err:    ErrBadMagic,
			offset: 0,
		},
		{
			name:   "version",
			data:   stream([]byte{0xaf, 0x17, 3, 0, 0}),
			err:    ErrBadVersion,
			offset: 2,
		},
		{
			name:   "varint overflow",
			data:   bytes.Repeat([]byte{0xff}, 11),
			err:    ErrVarintOverflow,
			offset: 0,
		},
		{
			name:   "quoted flag",
			data:   stream(header, []byte{1, 1, 'f', 0, 2}),
			err:    ErrBadQuotedFlag,
			offset: 8,
		},
		{
			name:   "symbol index",
			data:   stream(header, []byte{0, tagAppl, 0, 0}),
			err:    ErrSymbolIndex,
			offset: 5,
		},
		{
			name:   "tag",
			data:   stream(header, []byte{0, 0x63}),
			err:    ErrBadTag,
			offset: 5,
		},
		{
			name:   "zero tag",
			data:   stream(header, []byte{0, 0}),
			err:    ErrBadTag,
			offset: 5,
		},
		{
			name:   "reference to nothing",
			data:   stream(header, []byte{0, tagRef, 0}),
			err:    ErrBackReference,
			offset: 5,
		},
		{
			name:   "reference to enclosing term",
			data:   stream(header, []byte{0, tagList, tagRef, 0}),
			err:    ErrBackReference,
			offset: 6,
		},
		{
			name:   "arity",
			data:   stream(header, []byte{1, 1, 'f', 2, 0, tagAppl, 0, 1}),
			err:    ErrArityMismatch,
			offset: 9,
		},
		{
			name:   "list tail",
			data:   stream(header, []byte{0, tagList, tagInt, 2, tagInt, 4, 0}),
			err:    ErrBadListTail,
			offset: 5,
		},
		{
			name:   "root",
			data:   stream(header, []byte{0, tagInt, 2, 1}),
			err:    ErrBadRoot,
			offset: 7,
		},
		{
			name:   "blob length",
			data:   stream(header, []byte{0, tagBlob, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}),
			err:    ErrTooLarge,
			offset: 13,
		},
		{
			name:   "blob body",
			data:   stream(header, []byte{0, tagBlob, 4, 'a', 'b'}),
			err:    ErrTruncated,
			offset: 9,
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEngine(t)
			_, err := Unmarshal(e, c.data)
			if !errors.Is(err, c.err) {
				t.Fatalf("got %v", err)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("got %T", err)
			}
			if decodeErr.Offset != c.offset {
				t.Fatalf("got offset %d", decodeErr.Offset)
			}
			expectClean(t, e)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	src := newTestEngine(t)
	f := src.Symbol("f", 2, false)
	g := src.Symbol("g", 1, true)
	term := src.Appl(f,
		src.Appl(g, src.List(src.Int(-300), src.Real(1.5), src.Blob([]byte("abc")))),
		src.Placeholder(src.Int(1)),
	)
	data, err := Marshal(term)
	if err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t)
	for i := range len(data) {
		_, err := Unmarshal(e, data[:i])
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("prefix %d: got %v", i, err)
		}
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatal()
		}
		if decodeErr.Offset != int64(i) {
			t.Fatalf("prefix %d: got offset %d", i, decodeErr.Offset)
		}
		expectClean(t, e)
	}

	decoded, err := Unmarshal(e, data)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.String() != term.String() {
		t.Fatalf("got %v", decoded)
	}
}

func TestMinorVersion(t *testing.T) {
	e := newTestEngine(t)
	decoded, err := Unmarshal(e, stream([]byte{0xaf, 0x17, MajorVersion, 7, 0, tagInt, 5, 0}))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Int() != -3 {
		t.Fatalf("got %v", decoded.Int())
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	e := newTestEngine(t)
	_, err := Unmarshal(e, stream(header, []byte{0, 0x63}))
	if err.Error() != "baf: offset 5: bad term tag: 99" {
		t.Fatalf("got %v", err)
	}
}

func TestReadFileError(t *testing.T) {
	e := newTestEngine(t)
	path := t.TempDir() + "/bad.baf"
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(e, path)
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("got %v", err)
	}
	expectClean(t, e)
}

func TestTrailingData(t *testing.T) {
	e := newTestEngine(t)
	f := e.Symbol("f", 1, false)
	data, err := Marshal(e.Appl(f, e.Int(7)))
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != LeadByte {
		t.Fatalf("got %#x", data[0])
	}
	two := stream(data, data)

	// Decode leaves the rest of the stream for the next call
	r := NewBytesReader(two)
	first, err := Decode(e, r)
	if err != nil {
		t.Fatal(err)
	}
	if r.Offset() != int64(len(data)) {
		t.Fatalf("got %v", r.Offset())
	}
	second, err := Decode(e, r)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || first.String() != "f(7)" {
		t.Fatalf("got %v and %v", first, second)
	}

	_, err = Unmarshal(e, two)
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("got %v", err)
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Offset != int64(len(data)) {
		t.Fatalf("got %v", err)
	}

	path := t.TempDir() + "/two.baf"
	if err := os.WriteFile(path, two, 0644); err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(e, path)
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("got %v", err)
	}
	expectClean(t, e)
}
