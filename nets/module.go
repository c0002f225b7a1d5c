package nets

import (
	"github.com/reusee/aterm/logs"
	"github.com/reusee/dscope"
)

// Module provides remote access to BAF files. A configs.Loader must be provided by the enclosing scope.
type Module struct {
	dscope.Module
	Logs logs.Module
}
