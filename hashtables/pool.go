package hashtables

type entry[K, V any] struct {
	next  *entry[K, V]
	hash  uint64
	key   K
	value V
}

// entryPool hands out entries carved from blocks and recycles released ones through a free list.
type entryPool[K, V any] struct {
	blockSize int
	free      *entry[K, V]
	blocks    int
	inUse     int
}

func (p *entryPool[K, V]) get() *entry[K, V] {
	if p.free == nil {
		block := make([]entry[K, V], p.blockSize)
		for i := len(block) - 1; i >= 0; i-- {
			block[i].next = p.free
			p.free = &block[i]
		}
		p.blocks++
	}
	e := p.free
	p.free = e.next
	e.next = nil
	p.inUse++
	return e
}

func (p *entryPool[K, V]) put(e *entry[K, V]) {
	var zeroK K
	var zeroV V
	e.key = zeroK
	e.value = zeroV
	e.hash = 0
	e.next = p.free
	p.free = e
	p.inUse--
}
