package tui

import (
	"fmt"
	"strings"

	"github.com/gravityfile/gravityfile/internal/age"
	"github.com/gravityfile/gravityfile/internal/duplicate"
	"github.com/gravityfile/gravityfile/internal/model"
)

// renderDuplicates formats a duplicate.Report for the Duplicates view
// (§4.C), one line per group sorted by wasted bytes descending
// (already the Report's order).
func renderDuplicates(report *duplicate.Report, styles Styles, width int) string {
	if report == nil || len(report.Groups) == 0 {
		return styles.Item.Width(width).Render("no duplicates found")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d groups, %s wasted across %d files\n\n",
		len(report.Groups), FormatSize(int64(report.TotalWastedSpace)), report.FilesWithDuplicates)

	for _, g := range report.Groups {
		fmt.Fprintf(&b, "%s wasted  (%d x %s)\n", FormatSize(int64(g.WastedBytes)), len(g.Paths), FormatSize(int64(g.Size)))
		for _, p := range g.Paths {
			fmt.Fprintf(&b, "  %s\n", p)
		}
		b.WriteString("\n")
	}
	return styles.Item.Width(width).Render(b.String())
}

// renderAge formats an age.Report for the Age view (§4.D): per-bucket
// counts/sizes followed by the stale-directories list.
func renderAge(report *age.Report, styles Styles, width int) string {
	if report == nil {
		return styles.Item.Width(width).Render("no data")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "mean age %s, median bucket %s\n\n", age.FormatAge(report.AverageAge), report.MedianAgeBucket)

	for _, stat := range report.Buckets {
		fmt.Fprintf(&b, "%-10s %6d files  %s\n", stat.Name, stat.FileCount, FormatSize(int64(stat.TotalSize)))
		for _, f := range stat.TopFiles {
			fmt.Fprintf(&b, "    %s  %s\n", FormatSize(int64(f.Size)), f.Path)
		}
	}

	if len(report.StaleDirectories) > 0 {
		b.WriteString("\nstale directories:\n")
		for _, d := range report.StaleDirectories {
			fmt.Fprintf(&b, "  %s  %s\n", FormatSize(int64(d.Size)), d.Path)
		}
	}

	return styles.Item.Width(width).Render(b.String())
}

// renderErrors formats the scan's warning list for the Errors view.
func renderErrors(tree *model.Tree, styles Styles, width int) string {
	if tree == nil || len(tree.Warnings) == 0 {
		return styles.Item.Width(width).Render("no warnings")
	}
	var b strings.Builder
	for _, w := range tree.Warnings {
		fmt.Fprintf(&b, "%s: %s (%s)\n", w.Kind, w.Path, w.Message)
	}
	return styles.Item.Width(width).Render(b.String())
}
