// Package cmd implements the relm CLI commands.
//
// The root command dispatches to subcommands (init, status, demo).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/relm/pkg/config"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "relm",
	Short: "relm - reactive components with composable traits",
	Long: `relm builds components from ordered traits over an immutable state
snapshot. This tool checks project configuration and runs a terminal
gallery of the built-in widgets.

Use "relm <command> --help" for more information about a command.`,
	Usage: "relm <command> [flags]",
}

var (
	commands    = make(map[string]*Command)
	subCommands []*Command

	// stdout and stderr are swapped in tests.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// projectDir overrides the directory searched for the project root.
	projectDir string
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	subCommands = append(subCommands, cmd)
}

// Execute runs the CLI with the given arguments (without the program name).
func Execute(args []string) error {
	projectDir = ""

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "relm version %s\n", config.Version)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--dir":
			if i+1 >= len(args) {
				return fmt.Errorf("--dir requires a directory path")
			}
			projectDir = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--dir=") {
				projectDir = strings.TrimPrefix(arg, "--dir=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := cmd.Run(cmdArgs); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// workingDir returns --dir when given, else the process working directory.
func workingDir() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	return os.Getwd()
}

// resolveProject finds the project root above the working directory and
// resolves its configuration.
func resolveProject() (*config.Resolved, error) {
	dir, err := workingDir()
	if err != nil {
		return nil, err
	}
	return config.Resolve(config.FindProjectRoot(dir))
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range subCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --dir DIR            Start the project search in DIR")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  relm init                 Write relm.yaml in the current directory")
	fmt.Fprintln(stdout, "  relm status               Show the resolved configuration")
	fmt.Fprintln(stdout, "  relm demo                 Run the terminal widget gallery")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
