package cmd

import (
	"fmt"

	"github.com/go-drift/relm/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "status",
		Short: "Show the resolved project configuration",
		Long: `Show the configuration relm resolves for the current project.

The project root is the nearest directory above the working directory that
holds relm.yaml or go.mod. Values missing from relm.yaml show their
defaults.`,
		Usage: "relm status",
		Run:   runStatus,
	})
}

func runStatus(args []string) error {
	cfg, err := resolveProject()
	if err != nil {
		return err
	}

	module := cfg.ModulePath
	if module == "" {
		module = "(none)"
	}
	fmt.Fprintf(stdout, "Project: %s\n", cfg.AppName)
	fmt.Fprintf(stdout, "  root:        %s\n", cfg.Root)
	fmt.Fprintf(stdout, "  module:      %s\n", module)
	fmt.Fprintf(stdout, "  engine:      %s (library %s)\n", cfg.EngineVersion, config.Version)
	fmt.Fprintf(stdout, "  max passes:  %d\n", cfg.MaxPasses)
	fmt.Fprintf(stdout, "  effects:     %s\n", onOff(cfg.EffectsEnabled))
	fmt.Fprintf(stdout, "  verbose:     %s\n", onOff(cfg.Verbose))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
