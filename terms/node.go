package terms

import (
	"bytes"
	"math"
)

const (
	flagLive uint8 = 1 << iota
	flagPinned
)

type node struct {
	gen   uint32
	kind  Kind
	class uint8
	flags uint8
	// collector only; accessors must not read it
	marked bool
	hash   uint64
	sym    *Symbol
	args   []Term
	bits   uint64
	blob   []byte
	next   *node
}

func (n *node) children() []Term {
	return n.args
}

func (n *node) computeHash() uint64 {
	h := mix(prime1, uint64(n.kind))
	switch n.kind {
	case KindAppl:
		h = mix(h, n.sym.hash)
	case KindInt, KindReal:
		h = mix(h, n.bits)
	case KindBlob:
		h = hashBytes(h, n.blob)
	}
	for _, arg := range n.args {
		h = mix(h, arg.n.hash)
	}
	return finish(h)
}

// structurally equal given children compared by identity
func nodeEqual(stored, probe *node) bool {
	if stored.kind != probe.kind ||
		stored.sym != probe.sym ||
		stored.bits != probe.bits ||
		len(stored.args) != len(probe.args) {
		return false
	}
	for i, arg := range stored.args {
		if arg != probe.args[i] {
			return false
		}
	}
	if stored.kind == KindBlob {
		return bytes.Equal(stored.blob, probe.blob)
	}
	return true
}

func realBits(v float64) uint64 {
	return math.Float64bits(v)
}
