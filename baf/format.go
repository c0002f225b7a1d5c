package baf

import "math"

const (
	Magic        = 0x0baf
	MajorVersion = 4
	MinorVersion = 0

	// LeadByte is the first byte of every stream, the low bits of the varint Magic.
	LeadByte = Magic&0x7f | 0x80
)

const (
	tagAppl byte = iota + 1
	tagInt
	tagReal
	tagList
	tagEmptyList
	tagBlob
	tagPlaceholder
	tagRef
)

// readers refuse single allocations above this, truncated input fails before the length is reached
const maxChunk = 64 * 1024

func zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func realToBits(v float64) uint64 {
	return math.Float64bits(v)
}
