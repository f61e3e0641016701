// Command relm inspects relm projects and runs the widget demo.
package main

import (
	"os"

	"github.com/go-drift/relm/cmd/relm/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
