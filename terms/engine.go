package terms

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/reusee/aterm/hashtables"
	"github.com/reusee/aterm/logs"
	"github.com/reusee/aterm/syncs"
)

// Engine owns a universe of maximally shared terms: the intern table, the block pools and the root registry.
// Unless Config.ThreadSafe is set, an Engine must be used from one goroutine at a time.
type Engine struct {
	config Config
	logger logs.Logger
	lock   sync.Locker
	closed bool

	classes    [numClasses]sizeClass
	totalSlots int
	interned   *hashtables.Table[*node, struct{}]
	probe      node
	probing    bool

	symbols     *hashtables.Table[*Symbol, struct{}]
	symbolProbe Symbol

	emptyList Term

	roots      []rootRecord
	freeRoots  []int
	rootSerial uint64
	markables  []Markable

	collecting            bool
	collections           int
	allocatedSinceCollect int
	liveAfterCollect      int
	lastCycle             CycleStats
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// NewEngine initializes an engine. A nil logger discards engine logs.
func NewEngine(config Config, logger logs.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		config: config,
		logger: logger,
		interned: hashtables.New[*node, struct{}](
			nodeEqual,
			hashtables.WithLoadFactor(config.InternLoadFactor),
			hashtables.WithInitialBuckets(config.InternInitialBuckets),
		),
		symbols: hashtables.New[*Symbol, struct{}](
			symbolEqual,
			hashtables.WithLoadFactor(config.InternLoadFactor),
		),
	}
	if config.ThreadSafe {
		e.lock = syncs.NewSemaphore(1)
	} else {
		e.lock = noLock{}
	}
	for i := range e.classes {
		e.classes[i].index = i
		e.classes[i].arity = i
	}
	e.classes[wideClass].arity = -1

	n := e.allocate(0)
	n.kind = KindEmptyList
	n.flags |= flagPinned
	n.hash = n.computeHash()
	e.interned.Put(n, n.hash, struct{}{})
	e.emptyList = Term{n: n, gen: n.gen}

	return e, nil
}

// Close tears down the engine. Every outstanding Term becomes stale and further calls panic with ErrClosed.
func (e *Engine) Close() {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for i := range e.classes {
		c := &e.classes[i]
		c.each(func(n *node) {
			n.gen++
			n.flags = 0
		})
		*c = sizeClass{index: c.index, arity: c.arity}
	}
	e.interned.Clear()
	e.symbols.Range(func(sym *Symbol, _ struct{}) bool {
		sym.dead = true
		return true
	})
	e.symbols.Clear()
	e.roots = nil
	e.freeRoots = nil
	e.markables = nil
	e.totalSlots = 0
	e.logger.Debug("engine closed", "collections", e.collections)
}

func (e *Engine) checkOpen() {
	if e.closed {
		panic(ErrClosed)
	}
}

func (e *Engine) debug() bool {
	return e.config.Debug
}

func (e *Engine) Config() Config {
	return e.config
}

// checkTerm panics unless t is a live term of this engine.
func (e *Engine) checkTerm(t Term) *node {
	n := t.node()
	if int(n.class) >= numClasses {
		panic(fmt.Errorf("%w: bad size class %d", ErrCorrupted, n.class))
	}
	return n
}
