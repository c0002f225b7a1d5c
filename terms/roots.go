package terms

import "fmt"

// RootHandle identifies one protection record. The zero RootHandle protects nothing.
type RootHandle struct {
	index  int
	serial uint64
}

type rootRecord struct {
	term   Term
	slot   *Term
	serial uint64
}

// Protect registers t as a root until Unprotect is called with the returned handle.
//
//	defer e.Unprotect(e.Protect(t))
func (e *Engine) Protect(t Term) RootHandle {
	e.begin()
	defer e.lock.Unlock()
	e.checkTerm(t)
	return e.addRoot(rootRecord{
		term: t,
	})
}

// ProtectSlot registers the term stored at slot as a root. The slot is read at every collection, so it may be
// reassigned freely, and may hold the zero Term.
func (e *Engine) ProtectSlot(slot *Term) RootHandle {
	e.begin()
	defer e.lock.Unlock()
	if slot == nil {
		panic(fmt.Errorf("%w: nil slot", ErrStaleTerm))
	}
	return e.addRoot(rootRecord{
		slot: slot,
	})
}

func (e *Engine) addRoot(record rootRecord) RootHandle {
	e.rootSerial++
	record.serial = e.rootSerial
	var index int
	if n := len(e.freeRoots); n > 0 {
		index = e.freeRoots[n-1]
		e.freeRoots = e.freeRoots[:n-1]
		e.roots[index] = record
	} else {
		index = len(e.roots)
		e.roots = append(e.roots, record)
	}
	return RootHandle{
		index:  index,
		serial: record.serial,
	}
}

// Unprotect removes the protection record of h. Unprotecting a handle twice panics with ErrDoubleUnprotect.
func (e *Engine) Unprotect(h RootHandle) {
	e.begin()
	defer e.lock.Unlock()
	if h.serial == 0 ||
		h.index >= len(e.roots) ||
		e.roots[h.index].serial != h.serial {
		panic(fmt.Errorf("%w: handle %d", ErrDoubleUnprotect, h.serial))
	}
	if h.index == len(e.roots)-1 {
		// scoped protection pops from the top
		e.roots[h.index] = rootRecord{}
		e.roots = e.roots[:h.index]
		for len(e.roots) > 0 && e.roots[len(e.roots)-1].serial == 0 {
			e.roots = e.roots[:len(e.roots)-1]
		}
		e.dropFreeRootsAbove(len(e.roots))
		return
	}
	e.roots[h.index] = rootRecord{}
	e.freeRoots = append(e.freeRoots, h.index)
}

func (e *Engine) dropFreeRootsAbove(n int) {
	i := 0
	for _, index := range e.freeRoots {
		if index < n {
			e.freeRoots[i] = index
			i++
		}
	}
	e.freeRoots = e.freeRoots[:i]
}

// Roots returns the number of protection records.
func (e *Engine) Roots() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.roots) - len(e.freeRoots)
}
