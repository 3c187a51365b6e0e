package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dustin/go-humanize"

	"github.com/gravityfile/gravityfile/internal/model"
	"github.com/gravityfile/gravityfile/internal/scanner"
)

var scanConfiguration struct {
	maxDepth int
	all      bool
	top      int
}

var scanCommand = &cobra.Command{
	Use:   "scan [PATH]",
	Short: "Run a full scan and print a text summary",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	flags := scanCommand.Flags()
	flags.SortFlags = false
	flags.IntVarP(&scanConfiguration.maxDepth, "depth", "d", 0, "Maximum recursion depth (0 = unbounded)")
	flags.BoolVarP(&scanConfiguration.all, "all", "a", false, "Include hidden entries")
	flags.IntVarP(&scanConfiguration.top, "top", "n", 20, "Number of largest files to list")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := rootPath(args)

	cfg := scanner.DefaultConfig(root)
	cfg.MaxDepth = scanConfiguration.maxDepth
	cfg.IncludeHidden = scanConfiguration.all

	walker := scanner.NewWalker()
	tree, err := walker.Scan(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	printScanSummary(tree, scanConfiguration.top)
	return nil
}

func printScanSummary(tree *model.Tree, top int) {
	bold := color.New(color.Bold)
	bold.Printf("%s\n", tree.RootPath)
	fmt.Printf("  %s in %d files, %d directories\n",
		humanize.Bytes(tree.Stats.TotalSize), tree.Stats.TotalFiles, tree.Stats.TotalDirs)
	fmt.Printf("  scanned in %s\n", tree.ScanDur)

	if len(tree.Warnings) > 0 {
		color.Yellow("  %d warnings (see `grav` interactively for the Errors view)", len(tree.Warnings))
	}

	if top <= 0 || len(tree.Stats.LargestFiles) == 0 {
		return
	}
	fmt.Println()
	bold.Println("largest files:")
	n := top
	if n > len(tree.Stats.LargestFiles) {
		n = len(tree.Stats.LargestFiles)
	}
	for _, f := range tree.Stats.LargestFiles[:n] {
		fmt.Printf("  %10s  %s\n", humanize.Bytes(f.Size), f.Path)
	}
}
