package terms

type ClassStats struct {
	Class     int
	Blocks    int
	Slots     int
	Live      int
	Free      int
	Reclaimed int
}

type Stats struct {
	Collections int
	Terms       int
	Symbols     int
	Roots       int
	Markables   int
	Slots       int
	LastCycle   CycleStats
	Classes     []ClassStats
}

func (e *Engine) Stats() Stats {
	e.lock.Lock()
	defer e.lock.Unlock()
	stats := Stats{
		Collections: e.collections,
		Terms:       e.interned.Len(),
		Symbols:     e.symbols.Len(),
		Roots:       len(e.roots) - len(e.freeRoots),
		Markables:   len(e.markables),
		Slots:       e.totalSlots,
		LastCycle:   e.lastCycle,
	}
	for i := range e.classes {
		c := &e.classes[i]
		stats.Classes = append(stats.Classes, ClassStats{
			Class:     c.index,
			Blocks:    len(c.blocks),
			Slots:     c.slots,
			Live:      c.live,
			Free:      c.slots - c.live,
			Reclaimed: c.reclaimed,
		})
	}
	return stats
}

// ClassOf returns the size class index terms with nargs children are allocated from.
func ClassOf(nargs int) int {
	return classOf(nargs)
}
