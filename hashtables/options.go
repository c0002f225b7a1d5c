package hashtables

type Option func(*tableConfig)

type tableConfig struct {
	loadFactor     float64
	initialBuckets int
	entryBlockSize int
}

const (
	DefaultLoadFactor     = 0.75
	DefaultInitialBuckets = 16
	DefaultEntryBlockSize = 256
)

func defaultTableConfig() tableConfig {
	return tableConfig{
		loadFactor:     DefaultLoadFactor,
		initialBuckets: DefaultInitialBuckets,
		entryBlockSize: DefaultEntryBlockSize,
	}
}

// WithLoadFactor sets the fraction of buckets that may be occupied before the table grows.
func WithLoadFactor(f float64) Option {
	return func(c *tableConfig) {
		if f > 0 {
			c.loadFactor = f
		}
	}
}

// WithInitialBuckets sets the initial bucket count, rounded up to a power of two.
func WithInitialBuckets(n int) Option {
	return func(c *tableConfig) {
		if n > 0 {
			c.initialBuckets = n
		}
	}
}

// WithEntryBlockSize sets how many entries the pool allocates at once.
func WithEntryBlockSize(n int) Option {
	return func(c *tableConfig) {
		if n > 0 {
			c.entryBlockSize = n
		}
	}
}
