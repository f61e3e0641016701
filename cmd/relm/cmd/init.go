package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-drift/relm/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Write a starter relm.yaml",
		Long: `Write a starter relm.yaml in the project directory.

The file pins engine.version to this library and spells out the defaults
for state.max_passes and effects.enabled. The app name defaults to the last
element of the go.mod module path, or the directory name without one.

Examples:
  relm init
  relm init gallery`,
		Usage: "relm init [app-name]",
		Run:   runInit,
	})
}

var appNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

func runInit(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("too many arguments\n\nUsage: relm init [app-name]")
	}
	dir, err := workingDir()
	if err != nil {
		return err
	}
	root := config.FindProjectRoot(dir)
	if _, err := os.Stat(filepath.Join(root, config.FileName)); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, root)
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		resolved, err := config.Resolve(root)
		if err != nil {
			return err
		}
		name = resolved.AppName
	}
	if !appNamePattern.MatchString(name) {
		return fmt.Errorf("invalid app name %q: use letters, digits, '-' and '_', starting with a letter", name)
	}

	if err := config.Write(root, config.Starter(name)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", filepath.Join(root, config.FileName))
	return nil
}
