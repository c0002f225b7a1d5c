package termconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/aterm/cmds"
	"github.com/reusee/aterm/configs"
	"github.com/reusee/aterm/logs"
)

//go:embed schema.cue
var schema string

var configFiles = cmds.Collect[string]("-config")

func init() {
	cmds.Define("-print-schema", cmds.Func(func() {
		os.Stdout.WriteString(schema)
		os.Exit(0)
	}).Desc("print the configuration schema"))
}

var filenames = []string{
	"aterm.cue",
	".aterm.cue",
}

func existing(dir string) (ret []string) {
	for _, filename := range filenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			ret = append(ret, path)
		}
	}
	return
}

// ConfigsLoader loads files named by -config first, then the working directory, the user config dir and /etc.
func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	paths := append([]string(nil), *configFiles...)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		paths = append(paths, existing(workingDir)...)
	}

	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, existing(configDir)...)
	}

	// system wide dir
	paths = append(paths, existing("/etc")...)

	return configs.NewLoader(paths, schema)
}
