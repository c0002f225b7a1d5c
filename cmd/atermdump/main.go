package main

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/reusee/aterm/baf"
	"github.com/reusee/aterm/cmds"
	"github.com/reusee/aterm/debugs"
	"github.com/reusee/aterm/logs"
	"github.com/reusee/aterm/modes"
	"github.com/reusee/aterm/terms"
	"github.com/reusee/dscope"
)

var (
	filePath    = cmds.Var[string]("-file")
	outPath     = cmds.Var[string]("-out")
	evalSource  = cmds.Var[string]("-eval")
	printText   = cmds.Switch("text")
	printStats  = cmds.Switch("stats")
	interactive = cmds.Switch("-tap")
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "no input, use -file <path or url>")
		os.Exit(1)
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		engine *terms.Engine,
		load Load,
		tap debugs.Tap,
	) {
		defer engine.Close()
		ctx, _ = newSpan(ctx, "")

		root, err := load(ctx, *filePath)
		if err != nil {
			logger.ErrorContext(ctx, "load", "error", err)
			fmt.Fprintf(os.Stderr, "could not load file %s: %v\n", *filePath, logs.WrapSpan(ctx, err))
			os.Exit(1)
		}
		defer engine.Unprotect(engine.Protect(root))

		if *printText {
			out := bufio.NewWriter(os.Stdout)
			ce(terms.Fprint(out, root))
			ce(out.WriteByte('\n'))
			ce(out.Flush())
		}

		if *outPath != "" {
			ce(baf.WriteFile(*outPath, root))
			logger.InfoContext(ctx, "written", "path", *outPath)
		}

		if *evalSource != "" {
			session := debugs.NewSession(engine)
			defer session.Close()
			globals, err := session.Eval("eval", *evalSource, map[string]any{
				"root": root,
			})
			ce(err)
			for _, name := range slices.Sorted(maps.Keys(globals)) {
				fmt.Printf("%s = %s\n", name, globals[name])
			}
		}

		if *printStats {
			engine.Collect()
			ce(writeStats(os.Stdout, engine.Stats()))
		}

		if *interactive {
			tap(ctx, *filePath, engine, map[string]any{
				"root":    root,
				"collect": engine.Collect,
			})
		}

	})
}

func ce(err error) {
	if err != nil {
		panic(err)
	}
}
