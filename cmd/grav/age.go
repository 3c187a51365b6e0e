package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gravityfile/gravityfile/internal/age"
	"github.com/gravityfile/gravityfile/internal/scanner"
)

var ageConfiguration struct {
	stale  string
	format string
}

var ageCommand = &cobra.Command{
	Use:   "age [PATH]",
	Short: "Bucket files by modification age and list stale directories",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAge,
}

func init() {
	flags := ageCommand.Flags()
	flags.SortFlags = false
	flags.StringVarP(&ageConfiguration.stale, "stale", "s", "", "Stale threshold (e.g. 180d, 1y)")
	flags.StringVarP(&ageConfiguration.format, "format", "f", "text", "Output format: text|json")
}

func runAge(cmd *cobra.Command, args []string) error {
	root := rootPath(args)

	walker := scanner.NewWalker()
	tree, err := walker.Scan(context.Background(), scanner.DefaultConfig(root))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	cfg := age.DefaultConfig()
	if ageConfiguration.stale != "" {
		d, err := parseStaleDuration(ageConfiguration.stale)
		if err != nil {
			return fmt.Errorf("invalid --stale: %w", err)
		}
		cfg.StaleThreshold = d
	}

	report := age.Analyze(tree, cfg)

	if ageConfiguration.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printAgeText(report)
	return nil
}

func printAgeText(report *age.Report) {
	fmt.Printf("mean age %s, median bucket %s\n\n", age.FormatAge(report.AverageAge), report.MedianAgeBucket)
	for _, stat := range report.Buckets {
		fmt.Printf("%-10s %6d files  %s\n", stat.Name, stat.FileCount, humanize.Bytes(stat.TotalSize))
	}
	if len(report.StaleDirectories) == 0 {
		return
	}
	fmt.Println("\nstale directories:")
	for _, d := range report.StaleDirectories {
		fmt.Printf("  %s  %s  (%s old)\n", humanize.Bytes(d.Size), d.Path, age.FormatAge(d.NewestFileAge))
	}
}
