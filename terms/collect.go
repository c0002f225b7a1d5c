package terms

import (
	"fmt"
	"time"

	"github.com/reusee/aterm/procs"
)

// CycleStats describes one collection cycle.
type CycleStats struct {
	Marked           int
	ReclaimedTerms   int
	ReclaimedSymbols int
	Duration         time.Duration
}

type cycle struct {
	engine *Engine
	stack  []*node
	stats  CycleStats
}

// phases of a collection cycle, in order
var cyclePhases = procs.Seq(
	markRoots,
	markMarkables,
	sweepTerms,
	sweepSymbols,
	clearMarks,
)

// Collect runs a full stop-the-world collection. Every term not reachable from a root, a registered Markable
// or another live term is reclaimed.
func (e *Engine) Collect() CycleStats {
	e.begin()
	defer e.lock.Unlock()
	return e.collect()
}

func (e *Engine) collect() CycleStats {
	start := time.Now()
	e.collecting = true
	defer func() {
		e.collecting = false
	}()

	c := &cycle{
		engine: e,
	}
	if err := procs.Run(c, procs.Proc[*cycle](cyclePhases)); err != nil {
		panic(err)
	}

	c.stats.Duration = time.Since(start)
	e.collections++
	e.allocatedSinceCollect = 0
	e.liveAfterCollect = e.interned.Len()
	e.lastCycle = c.stats

	e.logger.Debug("collect",
		"cycle", e.collections,
		"marked", c.stats.Marked,
		"reclaimed_terms", c.stats.ReclaimedTerms,
		"reclaimed_symbols", c.stats.ReclaimedSymbols,
		"live", e.liveAfterCollect,
		"slots", e.totalSlots,
		"duration", c.stats.Duration,
	)

	if e.debug() {
		if err := e.verify(); err != nil {
			panic(err)
		}
	}
	return c.stats
}

func (c *cycle) mark(t Term) {
	n := t.node()
	if n.marked {
		return
	}
	n.marked = true
	c.stack = append(c.stack, n)
	c.drain()
}

func (c *cycle) drain() {
	for len(c.stack) > 0 {
		n := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		c.stats.Marked++
		if n.sym != nil {
			n.sym.marked = true
		}
		for _, child := range n.args {
			cn := child.n
			if cn.marked {
				continue
			}
			cn.marked = true
			c.stack = append(c.stack, cn)
		}
	}
}

func markRoots(c *cycle) error {
	e := c.engine
	if !e.emptyList.IsZero() {
		c.mark(e.emptyList)
	}
	for _, record := range e.roots {
		switch {
		case record.slot != nil:
			if record.slot.n != nil {
				c.mark(*record.slot)
			}
		case record.term.n != nil:
			c.mark(record.term)
		}
	}
	if e.probing {
		if e.probe.sym != nil {
			e.probe.sym.marked = true
		}
		for _, arg := range e.probe.args {
			c.mark(arg)
		}
	}
	return nil
}

func markMarkables(c *cycle) error {
	for _, m := range c.engine.markables {
		m.MarkTerms(c.mark)
	}
	return nil
}

func sweepTerms(c *cycle) error {
	e := c.engine
	for i := range e.classes {
		class := &e.classes[i]
		class.reclaimed = 0
		class.each(func(n *node) {
			if n.flags&flagLive == 0 ||
				n.marked ||
				n.flags&flagPinned != 0 {
				return
			}
			if _, ok := e.interned.Remove(n, n.hash, false); !ok {
				panic(fmt.Errorf("%w: live %v term missing from intern table", ErrCorrupted, n.kind))
			}
			n.gen++
			n.flags = 0
			n.kind = KindInvalid
			n.sym = nil
			n.bits = 0
			n.blob = nil
			n.hash = 0
			if class.index == wideClass {
				n.args = nil
			} else {
				clear(n.args)
			}
			n.next = class.free
			class.free = n
			class.live--
			class.reclaimed++
			c.stats.ReclaimedTerms++
		})
	}
	return nil
}

func sweepSymbols(c *cycle) error {
	e := c.engine
	var dead []*Symbol
	e.symbols.Range(func(sym *Symbol, _ struct{}) bool {
		if !sym.marked && sym.protected == 0 {
			dead = append(dead, sym)
		}
		return true
	})
	for _, sym := range dead {
		e.symbols.Remove(sym, sym.hash, false)
		sym.dead = true
	}
	c.stats.ReclaimedSymbols = len(dead)
	return nil
}

func clearMarks(c *cycle) error {
	e := c.engine
	for i := range e.classes {
		e.classes[i].each(func(n *node) {
			n.marked = false
		})
	}
	e.symbols.Range(func(sym *Symbol, _ struct{}) bool {
		sym.marked = false
		return true
	})
	return nil
}

// verify checks the consistency of the intern table and the pools.
func (e *Engine) verify() error {
	var err error
	e.interned.Range(func(n *node, _ struct{}) bool {
		if n.flags&flagLive == 0 {
			err = fmt.Errorf("%w: reclaimed %v slot in intern table", ErrCorrupted, n.kind)
			return false
		}
		if n.marked {
			err = fmt.Errorf("%w: mark flag left on %v", ErrCorrupted, n.kind)
			return false
		}
		if n.sym != nil && n.sym.dead {
			err = fmt.Errorf("%w: live term uses reclaimed symbol %v", ErrCorrupted, n.sym)
			return false
		}
		for _, arg := range n.args {
			if !arg.Valid() {
				err = fmt.Errorf("%w: live %v term has a reclaimed child", ErrCorrupted, n.kind)
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	live := 0
	for i := range e.classes {
		class := &e.classes[i]
		free := 0
		for n := class.free; n != nil; n = n.next {
			if n.flags&flagLive != 0 {
				return fmt.Errorf("%w: live slot on free list of class %d", ErrCorrupted, i)
			}
			free++
		}
		if free+class.live != class.slots {
			return fmt.Errorf("%w: class %d has %d free and %d live of %d slots",
				ErrCorrupted, i, free, class.live, class.slots)
		}
		live += class.live
	}
	if live != e.interned.Len() {
		return fmt.Errorf("%w: %d live slots, %d interned terms", ErrCorrupted, live, e.interned.Len())
	}
	return nil
}
