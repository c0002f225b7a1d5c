package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/aterm/baf"
	"github.com/reusee/aterm/logs"
	"github.com/reusee/aterm/nets"
	"github.com/reusee/aterm/terms"
)

type Load func(ctx context.Context, path string) (terms.Term, error)

// Load reads a local or remote term file into the engine. Files starting with the BAF lead byte are decoded
// as BAF, anything else is parsed as text.
func (Module) Load(
	engine *terms.Engine,
	fetch nets.Fetch,
	logger logs.Logger,
) Load {
	return func(ctx context.Context, path string) (ret terms.Term, err error) {
		defer func() {
			if err == nil {
				logger.InfoContext(ctx, "loaded",
					"path", path,
					"terms", engine.Len(),
				)
			}
		}()

		var body io.ReadCloser
		if nets.IsURL(path) {
			body, err = fetch(ctx, path)
		} else {
			body, err = os.Open(path)
		}
		if err != nil {
			return terms.Term{}, err
		}
		defer body.Close()

		t, err := readTerm(engine, body)
		if err != nil {
			return terms.Term{}, fmt.Errorf("read %s: %w", path, err)
		}
		return t, nil
	}
}

func readTerm(engine *terms.Engine, r io.Reader) (terms.Term, error) {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(1); err == nil && lead[0] == baf.LeadByte {
		return baf.DecodeAll(engine, baf.NewReader(br))
	}
	return terms.Parse(engine, br)
}
