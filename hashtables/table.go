package hashtables

import "math/bits"

// Table is a chained hash table whose hashing and equality are supplied by the caller.
// It is not safe for concurrent use.
type Table[K, V any] struct {
	equal   func(stored, probe K) bool
	destroy func(V)
	buckets []*entry[K, V]
	mask    uint64
	count   int
	limit   int
	config  tableConfig
	pool    entryPool[K, V]
}

// New returns an empty table. equal reports whether a stored key matches a probe key.
func New[K, V any](equal func(stored, probe K) bool, options ...Option) *Table[K, V] {
	config := defaultTableConfig()
	for _, option := range options {
		option(&config)
	}
	t := &Table[K, V]{
		equal:  equal,
		config: config,
		pool: entryPool[K, V]{
			blockSize: config.entryBlockSize,
		},
	}
	t.resize(roundUpPow2(config.initialBuckets))
	return t
}

// SetDestroy sets the callback Remove runs on values when asked to destroy them.
func (t *Table[K, V]) SetDestroy(fn func(V)) {
	t.destroy = fn
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (t *Table[K, V]) resize(n int) {
	old := t.buckets
	t.buckets = make([]*entry[K, V], n)
	t.mask = uint64(n - 1)
	t.limit = int(float64(n) * t.config.loadFactor)
	if t.limit < 1 {
		t.limit = 1
	}
	for _, e := range old {
		for e != nil {
			next := e.next
			i := e.hash & t.mask
			e.next = t.buckets[i]
			t.buckets[i] = e
			e = next
		}
	}
}

func (t *Table[K, V]) find(key K, hash uint64) *entry[K, V] {
	for e := t.buckets[hash&t.mask]; e != nil; e = e.next {
		if e.hash == hash && t.equal(e.key, key) {
			return e
		}
	}
	return nil
}

// Put inserts or replaces the value for key. It reports the previous value when one was replaced.
func (t *Table[K, V]) Put(key K, hash uint64, value V) (prev V, replaced bool) {
	if e := t.find(key, hash); e != nil {
		prev = e.value
		e.key = key
		e.value = value
		return prev, true
	}
	if t.count+1 > t.limit {
		t.resize(len(t.buckets) * 2)
	}
	e := t.pool.get()
	e.hash = hash
	e.key = key
	e.value = value
	i := hash & t.mask
	e.next = t.buckets[i]
	t.buckets[i] = e
	t.count++
	return
}

func (t *Table[K, V]) Get(key K, hash uint64) (value V, ok bool) {
	if e := t.find(key, hash); e != nil {
		return e.value, true
	}
	return
}

// GetKey is like Get but also returns the stored key, which may differ in identity from the probe.
func (t *Table[K, V]) GetKey(key K, hash uint64) (stored K, value V, ok bool) {
	if e := t.find(key, hash); e != nil {
		return e.key, e.value, true
	}
	return
}

// Remove deletes key. If destroy is true and a destroy callback is set, it runs on the removed value.
func (t *Table[K, V]) Remove(key K, hash uint64, destroy bool) (value V, ok bool) {
	p := &t.buckets[hash&t.mask]
	for e := *p; e != nil; e = e.next {
		if e.hash == hash && t.equal(e.key, key) {
			*p = e.next
			value = e.value
			t.pool.put(e)
			t.count--
			if destroy && t.destroy != nil {
				t.destroy(value)
			}
			return value, true
		}
		p = &e.next
	}
	return
}

func (t *Table[K, V]) Len() int {
	return t.count
}

// Buckets returns the current bucket array size.
func (t *Table[K, V]) Buckets() int {
	return len(t.buckets)
}

// Range calls fn for every entry until fn returns false. fn must not modify the table.
func (t *Table[K, V]) Range(fn func(K, V) bool) {
	for _, e := range t.buckets {
		for ; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Clear removes all entries without running destroy callbacks. Bucket capacity is kept.
func (t *Table[K, V]) Clear() {
	for i, e := range t.buckets {
		for e != nil {
			next := e.next
			t.pool.put(e)
			e = next
		}
		t.buckets[i] = nil
	}
	t.count = 0
}
