// Command grav is the gravityfile CLI: an interactive terminal
// explorer by default, with scan/duplicates/age/export subcommands for
// one-shot, scriptable output (§6 "Command-line surface").
//
// Grounded on the teacher's main.go (a bare tea.NewProgram launch);
// generalized into a cobra root command carrying the interactive
// launcher, alongside sibling subcommands for the non-interactive
// surface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "grav: %v\n", err)
		os.Exit(1)
	}
}

var rootConfiguration struct {
	forceScan bool
}

var rootCommand = &cobra.Command{
	Use:   "grav [PATH]",
	Short: "Interactive filesystem analyzer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInteractive,
}

func init() {
	rootCommand.CompletionOptions.DisableDefaultCmd = true

	flags := rootCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&rootConfiguration.forceScan, "scan", "S", false,
		"Force a full scan on startup rather than a quick list")

	rootCommand.AddCommand(scanCommand, duplicatesCommand, ageCommand, exportCommand)
}

func rootPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
