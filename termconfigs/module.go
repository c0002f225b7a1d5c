package termconfigs

import (
	"github.com/reusee/aterm/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
