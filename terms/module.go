package terms

import (
	"github.com/reusee/aterm/logs"
	"github.com/reusee/aterm/modes"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// Engine provides the engine of a scope. Development mode turns on the post-collection consistency checks.
func (Module) Engine(
	config Config,
	logger logs.Logger,
	mode modes.Mode,
) *Engine {
	if mode == modes.ModeDevelopment {
		config.Debug = true
	}
	engine, err := NewEngine(config, logs.Component(logger, "terms"))
	if err != nil {
		panic(err)
	}
	return engine
}
