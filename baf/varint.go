package baf

import (
	"encoding/binary"
	"errors"
	"io"
)

func writeUvarint(w ByteWriter, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

func writeUint64(w ByteWriter, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// readUvarint reads 7 bits per byte, least significant group first, high bit set on all but the last byte.
func readUvarint(r ByteReader) (uint64, error) {
	start := r.Offset()
	var v uint64
	for i := 0; i < binary.MaxVarintLen64; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, readError(r, err)
		}
		if i == binary.MaxVarintLen64-1 && b > 1 {
			return 0, &DecodeError{Offset: start, Err: ErrVarintOverflow}
		}
		v |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return v, nil
		}
	}
	return 0, &DecodeError{Offset: start, Err: ErrVarintOverflow}
}

func readUint64(r ByteReader) (uint64, error) {
	var buf [8]byte
	if err := r.ReadFull(buf[:]); err != nil {
		return 0, readError(r, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// readBytes reads n bytes in bounded chunks, so a corrupt length fails as truncation instead of allocating.
func readBytes(r ByteReader, n uint64) ([]byte, error) {
	if n > 1<<40 {
		return nil, &DecodeError{Offset: r.Offset(), Err: ErrTooLarge}
	}
	ret := make([]byte, 0, min(n, maxChunk))
	for uint64(len(ret)) < n {
		chunk := min(n-uint64(len(ret)), maxChunk)
		start := len(ret)
		ret = append(ret, make([]byte, chunk)...)
		if err := r.ReadFull(ret[start:]); err != nil {
			return nil, readError(r, err)
		}
	}
	return ret, nil
}

func readByte(r ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, readError(r, err)
	}
	return b, nil
}

func readError(r ByteReader, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = ErrTruncated
	}
	return &DecodeError{
		Offset: r.Offset(),
		Err:    err,
	}
}
