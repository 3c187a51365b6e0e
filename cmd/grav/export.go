package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gravityfile/gravityfile/internal/scanner"
)

var exportConfiguration struct {
	output string
}

var exportCommand = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Scan PATH and write a self-describing JSON document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	flags := exportCommand.Flags()
	flags.SortFlags = false
	flags.StringVarP(&exportConfiguration.output, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	root := rootPath(args)

	walker := scanner.NewWalker()
	tree, err := walker.Scan(context.Background(), scanner.DefaultConfig(root))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	data, err := tree.Export()
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}

	if exportConfiguration.output == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(exportConfiguration.output, data, 0o644)
}
