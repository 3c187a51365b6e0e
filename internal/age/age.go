// Package age implements the Age Engine (§4.D): buckets files by
// modification age and identifies stale directories.
//
// Grounded on original_source/crates/gravityfile-analyze/src/age.rs.
package age

import (
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gravityfile/gravityfile/internal/model"
)

// Bucket declares one contiguous age range, named, with an upper
// bound. Buckets are given in ascending max-age order; the final
// bucket's MaxAge should be a very large duration to make the set
// exhaustive (§4.D "Bucketing").
type Bucket struct {
	Name   string
	MaxAge time.Duration
}

// DefaultBuckets mirrors the buckets in original_source/age.rs's
// default_buckets(): Today, This Week, This Month, This Year, Older.
func DefaultBuckets() []Bucket {
	const day = 24 * time.Hour
	return []Bucket{
		{Name: "Today", MaxAge: day},
		{Name: "This Week", MaxAge: 7 * day},
		{Name: "This Month", MaxAge: 30 * day},
		{Name: "This Year", MaxAge: 365 * day},
		{Name: "Older", MaxAge: time.Duration(1) << 62},
	}
}

// Config holds the Age Engine's tunables (§4.D "Configuration").
type Config struct {
	ReferenceTime   time.Time
	Buckets         []Bucket
	StaleThreshold  time.Duration
	MinStaleSize    uint64
	MaxStaleDirs    int
	TopFilesPerBucket int
}

// DefaultConfig mirrors original_source/age.rs's AgeConfig::default():
// a 365-day stale threshold, 1 MiB minimum stale size, 100 max stale
// directories, top 10 files per bucket.
func DefaultConfig() Config {
	return Config{
		ReferenceTime:     time.Now(),
		Buckets:           DefaultBuckets(),
		StaleThreshold:    365 * 24 * time.Hour,
		MinStaleSize:      1024 * 1024,
		MaxStaleDirs:      100,
		TopFilesPerBucket: 10,
	}
}

// BucketFile is one entry in a bucket's top-N largest-files list.
type BucketFile struct {
	Path     string
	Size     uint64
	Modified time.Time
}

// BucketStats carries one bucket's aggregate statistics.
type BucketStats struct {
	Name       string
	FileCount  uint64
	TotalSize  uint64
	TopFiles   []BucketFile
}

// StaleDirectory is one hierarchically-detected stale subtree (§4.D
// "Stale detection").
type StaleDirectory struct {
	Path           string
	Size           uint64
	NewestFileAge  time.Duration
	FileCount      uint64
}

// Report is the Age Engine's output (§4.D "Contract").
type Report struct {
	Buckets           []BucketStats
	StaleDirectories  []StaleDirectory
	TotalFiles        uint64
	TotalSize         uint64
	AverageAge        time.Duration
	MedianAgeBucket   string
}

// Analyze walks tree, bucketing every file and detecting stale
// directories, per §4.D.
func Analyze(tree *model.Tree, cfg Config) *Report {
	stats := make([]BucketStats, len(cfg.Buckets))
	for i, b := range cfg.Buckets {
		stats[i] = BucketStats{Name: b.Name}
	}

	var totalFiles, totalSize uint64
	var totalAgeSeconds int64
	bucketFileCounts := make([]uint64, len(cfg.Buckets))

	var walkFiles func(n *model.Node, path string)
	walkFiles = func(n *model.Node, path string) {
		if n.IsDir() {
			for _, c := range n.Children {
				walkFiles(c, filepath.Join(path, c.Name))
			}
			return
		}
		if !n.IsFile() {
			return
		}
		age := cfg.ReferenceTime.Sub(n.Timestamps.Modified)
		if age < 0 {
			age = 0
		}
		idx := bucketIndex(cfg.Buckets, age)
		stats[idx].FileCount++
		stats[idx].TotalSize += n.Size
		bucketFileCounts[idx]++
		stats[idx].TopFiles = append(stats[idx].TopFiles, BucketFile{
			Path: path, Size: n.Size, Modified: n.Timestamps.Modified,
		})

		totalFiles++
		totalSize += n.Size
		totalAgeSeconds += int64(age.Seconds())
	}
	walkFiles(tree.Root, tree.RootPath)

	for i := range stats {
		sort.Slice(stats[i].TopFiles, func(a, b int) bool {
			return stats[i].TopFiles[a].Size > stats[i].TopFiles[b].Size
		})
		if len(stats[i].TopFiles) > cfg.TopFilesPerBucket {
			stats[i].TopFiles = stats[i].TopFiles[:cfg.TopFilesPerBucket]
		}
	}

	report := &Report{
		Buckets:    stats,
		TotalFiles: totalFiles,
		TotalSize:  totalSize,
	}
	if totalFiles > 0 {
		report.AverageAge = time.Duration(totalAgeSeconds/int64(totalFiles)) * time.Second
	}
	report.MedianAgeBucket = medianBucket(cfg.Buckets, bucketFileCounts, totalFiles)

	// The scan root itself is never reported; detection starts at its
	// children.
	var stale []StaleDirectory
	for _, c := range tree.Root.Children {
		findStaleDirectories(c, filepath.Join(tree.RootPath, c.Name), cfg, &stale)
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].Size > stale[j].Size })
	if cfg.MaxStaleDirs > 0 && len(stale) > cfg.MaxStaleDirs {
		stale = stale[:cfg.MaxStaleDirs]
	}
	report.StaleDirectories = stale

	return report
}

// bucketIndex returns the first bucket whose MaxAge is >= age
// (§4.D "Bucketing"): buckets are walked youngest-first since they are
// declared in ascending max-age order.
func bucketIndex(buckets []Bucket, age time.Duration) int {
	for i, b := range buckets {
		if age <= b.MaxAge {
			return i
		}
	}
	return len(buckets) - 1
}

// medianBucket returns the bucket at which cumulative file count first
// reaches ⌈total/2⌉, walking buckets youngest-first (§4.D
// "Aggregates"). This uses ceiling division, per spec.md's explicit
// formula — the Rust reference (age.rs) uses plain integer division,
// but spec.md is authoritative here (see DESIGN.md).
func medianBucket(buckets []Bucket, counts []uint64, total uint64) string {
	if total == 0 {
		return ""
	}
	half := (total + 1) / 2 // ceil(total/2)
	var cumulative uint64
	for i, c := range counts {
		cumulative += c
		if cumulative >= half {
			return buckets[i].Name
		}
	}
	return buckets[len(buckets)-1].Name
}

// findStaleDirectories implements the hierarchical stale-detection
// rule (§4.D "Stale detection"): a directory qualifies iff its
// aggregated size meets the minimum and no file anywhere beneath it
// has been modified more recently than the stale threshold. Qualifying
// directories are reported and their descendants are not separately
// considered.
func findStaleDirectories(n *model.Node, path string, cfg Config, out *[]StaleDirectory) {
	if !n.IsDir() {
		return
	}
	if n.Size < cfg.MinStaleSize {
		// Too small to matter; skip but still recurse into children,
		// since a descendant subtree may independently clear the
		// size threshold.
		for _, c := range n.Children {
			findStaleDirectories(c, filepath.Join(path, c.Name), cfg, out)
		}
		return
	}

	newest, fileCount, found := newestFileTime(n)
	if !found {
		return
	}
	age := cfg.ReferenceTime.Sub(newest)
	if age >= cfg.StaleThreshold {
		*out = append(*out, StaleDirectory{
			Path:          path,
			Size:          n.Size,
			NewestFileAge: age,
			FileCount:     fileCount,
		})
		return // report-and-stop-recursing: descendants not separately reported
	}

	for _, c := range n.Children {
		findStaleDirectories(c, filepath.Join(path, c.Name), cfg, out)
	}
}

// newestFileTime returns the maximum modified time over all descendant
// files of n, the count of descendant files, and whether any file was
// found at all.
func newestFileTime(n *model.Node) (time.Time, uint64, bool) {
	var newest time.Time
	var count uint64
	var found bool
	n.Walk(func(x *model.Node) bool {
		if x.IsFile() {
			count++
			if !found || x.Timestamps.Modified.After(newest) {
				newest = x.Timestamps.Modified
				found = true
			}
		}
		return true
	})
	return newest, count, found
}

// FormatAge renders a duration the way the original implementation's
// format_age helper does: the coarsest applicable unit, e.g. "2y",
// "3mo", "5d", "4h", "just now".
func FormatAge(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m"
	case d < day:
		return strconv.Itoa(int(d/time.Hour)) + "h"
	case d < 30*day:
		return strconv.Itoa(int(d/day)) + "d"
	case d < 365*day:
		return strconv.Itoa(int(d/(30*day))) + "mo"
	default:
		return strconv.Itoa(int(d/(365*day))) + "y"
	}
}
