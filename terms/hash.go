package terms

import (
	"hash/fnv"
	"math/bits"
)

const (
	prime1 = 0x9e3779b185ebca87
	prime2 = 0xc2b2ae3d27d4eb4f
	prime3 = 0x165667b19e3779f9
)

func mix(h, v uint64) uint64 {
	h ^= v * prime2
	h = bits.RotateLeft64(h, 31)
	return h*prime1 + prime3
}

func finish(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

func hashBytes(h uint64, data []byte) uint64 {
	f := fnv.New64a()
	f.Write(data)
	return mix(mix(h, uint64(len(data))), f.Sum64())
}

func hashString(h uint64, s string) uint64 {
	return hashBytes(h, []byte(s))
}
