package terms

import "fmt"

type block struct {
	nodes []node
	args  []Term
}

type sizeClass struct {
	index     int
	arity     int
	blocks    []*block
	free      *node
	slots     int
	live      int
	reclaimed int
}

func classOf(nargs int) int {
	if nargs > MaxInlineArity {
		return wideClass
	}
	return nargs
}

func (e *Engine) allocate(nargs int) *node {
	c := &e.classes[classOf(nargs)]
	if c.free == nil {
		if e.shouldCollect(c) {
			e.collect()
		}
		if c.free == nil {
			e.grow(c)
		}
	}
	n := c.free
	c.free = n.next
	n.next = nil
	n.flags = flagLive
	if c.index == wideClass {
		n.args = make([]Term, nargs)
	}
	c.live++
	e.allocatedSinceCollect++
	return n
}

func (e *Engine) shouldCollect(c *sizeClass) bool {
	if e.collecting {
		return false
	}
	if e.config.MaxSlots > 0 &&
		float64(e.totalSlots+e.config.BlockSize) > float64(e.config.MaxSlots)*e.config.HighWater {
		return true
	}
	if e.totalSlots < e.config.MinCollectSlots {
		return false
	}
	return float64(e.allocatedSinceCollect) >= float64(e.liveAfterCollect)*e.config.CollectRatio
}

func (e *Engine) grow(c *sizeClass) {
	size := e.config.BlockSize
	if e.config.MaxSlots > 0 && e.totalSlots+size > e.config.MaxSlots {
		err := fmt.Errorf("%w: class %d needs a block of %d slots, %d of %d slots in use after %d collections",
			ErrExhausted, c.index, size, e.totalSlots, e.config.MaxSlots, e.collections)
		e.logger.Error("term storage exhausted",
			"class", c.index,
			"slots", e.totalSlots,
			"max_slots", e.config.MaxSlots,
			"live", e.liveAfterCollect,
			"collections", e.collections,
		)
		panic(err)
	}

	b := &block{
		nodes: make([]node, size),
	}
	if c.index != wideClass && c.arity > 0 {
		b.args = make([]Term, size*c.arity)
	}
	for i := size - 1; i >= 0; i-- {
		n := &b.nodes[i]
		n.class = uint8(c.index)
		if b.args != nil {
			n.args = b.args[i*c.arity : (i+1)*c.arity : (i+1)*c.arity]
		}
		n.next = c.free
		c.free = n
	}
	c.blocks = append(c.blocks, b)
	c.slots += size
	e.totalSlots += size

	e.logger.Debug("grow term pool",
		"class", c.index,
		"blocks", len(c.blocks),
		"slots", e.totalSlots,
	)
}

func (c *sizeClass) each(fn func(*node)) {
	for _, b := range c.blocks {
		for i := range b.nodes {
			fn(&b.nodes[i])
		}
	}
}
