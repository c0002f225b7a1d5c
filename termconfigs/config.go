package termconfigs

import (
	"github.com/reusee/aterm/cmds"
	"github.com/reusee/aterm/configs"
	"github.com/reusee/aterm/logs"
	"github.com/reusee/aterm/terms"
	"github.com/reusee/aterm/vars"
)

var (
	blockSizeFlag  = cmds.Var[int]("-block-size")
	maxSlotsFlag   = cmds.Var[int]("-max-slots")
	threadSafeFlag = cmds.Switch("-thread-safe")
)

// Config resolves the engine configuration. Flags win over config files, config files over defaults.
func (Module) Config(
	loader configs.Loader,
	logger logs.Logger,
) terms.Config {
	config := terms.DefaultConfig()

	config.BlockSize = vars.FirstNonZero(
		*blockSizeFlag,
		configs.First[int](loader, "gc.block_size"),
		config.BlockSize,
	)
	config.MaxSlots = vars.FirstNonZero(
		*maxSlotsFlag,
		configs.First[int](loader, "gc.max_slots"),
	)
	config.HighWater = vars.FirstNonZero(
		configs.First[float64](loader, "gc.high_water"),
		config.HighWater,
	)
	// zero is meaningful for these
	if v, ok := configs.Lookup[float64](loader, "gc.collect_ratio"); ok {
		config.CollectRatio = v
	}
	if v, ok := configs.Lookup[int](loader, "gc.min_collect_slots"); ok {
		config.MinCollectSlots = v
	}

	config.InternLoadFactor = vars.FirstNonZero(
		configs.First[float64](loader, "intern.load_factor"),
		config.InternLoadFactor,
	)
	config.InternInitialBuckets = vars.FirstNonZero(
		configs.First[int](loader, "intern.initial_buckets"),
		config.InternInitialBuckets,
	)

	config.ThreadSafe = *threadSafeFlag || configs.First[bool](loader, "thread_safe")
	config.Debug = configs.First[bool](loader, "debug")

	logger.Debug("engine config",
		"block_size", config.BlockSize,
		"max_slots", config.MaxSlots,
		"thread_safe", config.ThreadSafe,
	)

	return config
}
