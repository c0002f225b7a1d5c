package terms

import "fmt"

type Config struct {
	// slots per block
	BlockSize int
	// upper bound on slots across all size classes, 0 for unbounded
	MaxSlots int
	// fraction of MaxSlots above which growing a pool collects first
	HighWater float64
	// growing without collecting is allowed while slots allocated since the last cycle
	// stay below CollectRatio times the slots live after it
	CollectRatio float64
	// no collection is triggered by CollectRatio below this many slots
	MinCollectSlots int

	InternLoadFactor     float64
	InternInitialBuckets int

	ThreadSafe bool
	Debug      bool
}

const (
	// MaxInlineArity is the largest number of children stored inside a block. Applications with more
	// arguments use the wide size class.
	MaxInlineArity = 8

	wideClass  = MaxInlineArity + 1
	numClasses = MaxInlineArity + 2
)

func DefaultConfig() Config {
	return Config{
		BlockSize:            1024,
		HighWater:            0.75,
		CollectRatio:         1,
		MinCollectSlots:      64 * 1024,
		InternLoadFactor:     0.75,
		InternInitialBuckets: 1024,
	}
}

func (c Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size %d", ErrBadConfig, c.BlockSize)
	}
	if c.MaxSlots < 0 {
		return fmt.Errorf("%w: max slots %d", ErrBadConfig, c.MaxSlots)
	}
	if c.MaxSlots > 0 && c.MaxSlots < c.BlockSize {
		return fmt.Errorf("%w: max slots %d smaller than block size %d", ErrBadConfig, c.MaxSlots, c.BlockSize)
	}
	if c.HighWater <= 0 || c.HighWater > 1 {
		return fmt.Errorf("%w: high water %v not in (0, 1]", ErrBadConfig, c.HighWater)
	}
	if c.CollectRatio < 0 {
		return fmt.Errorf("%w: collect ratio %v", ErrBadConfig, c.CollectRatio)
	}
	if c.InternLoadFactor <= 0 {
		return fmt.Errorf("%w: load factor %v", ErrBadConfig, c.InternLoadFactor)
	}
	return nil
}
