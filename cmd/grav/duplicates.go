package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gravityfile/gravityfile/internal/duplicate"
	"github.com/gravityfile/gravityfile/internal/scanner"
)

var duplicatesConfiguration struct {
	minSize string
	top     int
	format  string
}

var duplicatesCommand = &cobra.Command{
	Use:   "duplicates [PATH]",
	Short: "Find duplicate files under PATH",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDuplicates,
}

func init() {
	flags := duplicatesCommand.Flags()
	flags.SortFlags = false
	flags.StringVarP(&duplicatesConfiguration.minSize, "min-size", "m", "", "Minimum file size to consider (e.g. 1K, 4MB)")
	flags.IntVarP(&duplicatesConfiguration.top, "top", "n", 0, "Limit output to the N groups wasting the most space (0 = all)")
	flags.StringVarP(&duplicatesConfiguration.format, "format", "f", "text", "Output format: text|json")
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	root := rootPath(args)

	walker := scanner.NewWalker()
	tree, err := walker.Scan(context.Background(), scanner.DefaultConfig(root))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	cfg := duplicate.DefaultConfig()
	if duplicatesConfiguration.minSize != "" {
		size, err := parseSize(duplicatesConfiguration.minSize)
		if err != nil {
			return fmt.Errorf("invalid --min-size: %w", err)
		}
		cfg.MinSize = size
	}
	if duplicatesConfiguration.top > 0 {
		cfg.MaxGroups = duplicatesConfiguration.top
	}

	report := duplicate.Find(tree, cfg)

	if duplicatesConfiguration.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printDuplicatesText(report)
	return nil
}

func printDuplicatesText(report *duplicate.Report) {
	fmt.Printf("%d duplicate groups across %d files, %s wasted\n\n",
		report.GroupCount, report.FilesWithDuplicates, humanize.Bytes(report.TotalWastedSpace))
	for _, g := range report.Groups {
		fmt.Printf("%s wasted  (%d x %s)\n", humanize.Bytes(g.WastedBytes), len(g.Paths), humanize.Bytes(g.Size))
		for _, p := range g.Paths {
			fmt.Printf("  %s\n", p)
		}
	}
}
