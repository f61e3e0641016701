package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-drift/relm/cmd/relm/internal/demo"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Run the terminal widget gallery",
		Long: `Run a terminal gallery of the relm widgets.

Arrow keys, Home, End and typing move the selection. Enter opens a popup
for the selected color and Escape closes it. Drag an item sideways with
the mouse: far enough right marks it done, far enough left deletes it.
Ctrl-C quits.

The project's relm.yaml applies: effects.enabled, state.max_passes and
errors.verbose.`,
		Usage: "relm demo",
		Run:   runDemo,
	})
}

func runDemo(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("demo takes no arguments")
	}
	cfg, err := resolveProject()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return demo.Run(ctx, cfg, stderr)
}
