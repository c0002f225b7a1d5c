package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/aterm/modes"
	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestComponent(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForProduction()).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		Component(logger, "terms").Info("collect", "reclaimed", 3)
		line := buf.String()
		if !strings.Contains(line, "component=terms") {
			t.Fatalf("got %v", line)
		}
		if !strings.Contains(line, "reclaimed=3") {
			t.Fatalf("got %v", line)
		}
	})
}

func TestToJournalKey(t *testing.T) {
	if key := toJournalKey("logs.span"); key != "LOGS_SPAN" {
		t.Fatalf("got %v", key)
	}
}
