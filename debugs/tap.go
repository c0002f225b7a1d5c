package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/aterm/logs"
	"github.com/reusee/aterm/terms"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Tap starts an interactive starlark session over engine with globals bound.
// Terms in globals must be protected by the caller for the duration of the call.
type Tap func(ctx context.Context, what string, engine *terms.Engine, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, engine *terms.Engine, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		session := NewSession(engine)
		defer session.Close()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, session.Globals(globals))
	}
}
