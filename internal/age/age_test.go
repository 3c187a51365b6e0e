package age

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gravityfile/gravityfile/internal/model"
)

func node(id uint64, name string, size uint64, age time.Duration, ref time.Time) *model.Node {
	return model.NewFileNode(id, name, size, 8, model.Timestamps{Modified: ref.Add(-age)}, false)
}

func TestBucketingExhaustive(t *testing.T) {
	ref := time.Now()
	files := []*model.Node{
		node(1, "today.txt", 10, time.Hour, ref),
		node(2, "lastweek.txt", 10, 3*24*time.Hour, ref),
		node(3, "ancient.txt", 10, 3*365*24*time.Hour, ref),
	}
	root := model.NewDirectoryNode(4, "root", model.Timestamps{Modified: ref}, files)
	tree := model.NewTree(root, "/r", model.ScanConfigSummary{Root: "/r"})

	cfg := DefaultConfig()
	cfg.ReferenceTime = ref
	report := Analyze(tree, cfg)

	var total uint64
	for _, b := range report.Buckets {
		total += b.FileCount
	}
	if total != report.TotalFiles {
		t.Errorf("bucket counts sum to %d, want %d", total, report.TotalFiles)
	}
	if report.TotalFiles != 3 {
		t.Errorf("expected 3 total files, got %d", report.TotalFiles)
	}
}

func TestStaleDirectoryHierarchy(t *testing.T) {
	ref := time.Now()
	old1 := node(1, "a.bin", 10*1024*1024, 2*365*24*time.Hour, ref)
	old2 := node(2, "b.bin", 10*1024*1024, 2*365*24*time.Hour, ref)
	old3 := node(3, "c.bin", 10*1024*1024, 2*365*24*time.Hour, ref)
	sub := model.NewDirectoryNode(4, "sub", model.Timestamps{Modified: ref}, []*model.Node{old1, old2, old3})

	old4 := node(5, "d.bin", 20*1024*1024, 2*365*24*time.Hour, ref)
	oldDir := model.NewDirectoryNode(6, "old", model.Timestamps{Modified: ref}, []*model.Node{old4, sub})

	root := model.NewDirectoryNode(7, "r", model.Timestamps{Modified: ref}, []*model.Node{oldDir})
	tree := model.NewTree(root, "/r", model.ScanConfigSummary{Root: "/r"})

	cfg := DefaultConfig()
	cfg.ReferenceTime = ref
	cfg.StaleThreshold = 365 * 24 * time.Hour
	cfg.MinStaleSize = 10 * 1024 * 1024
	report := Analyze(tree, cfg)

	if len(report.StaleDirectories) != 1 {
		t.Fatalf("expected exactly 1 stale directory, got %d: %+v", len(report.StaleDirectories), report.StaleDirectories)
	}
	if report.StaleDirectories[0].Path != filepath.Join("/r", "old") {
		t.Errorf("expected /r/old reported stale, got %s", report.StaleDirectories[0].Path)
	}
}

func TestNotStaleWhenRecentFileExists(t *testing.T) {
	ref := time.Now()
	oldFile := node(1, "old.bin", 10*1024*1024, 2*365*24*time.Hour, ref)
	freshFile := node(2, "fresh.bin", 10*1024*1024, time.Hour, ref)
	dir := model.NewDirectoryNode(3, "mixed", model.Timestamps{Modified: ref}, []*model.Node{oldFile, freshFile})
	root := model.NewDirectoryNode(4, "r", model.Timestamps{Modified: ref}, []*model.Node{dir})
	tree := model.NewTree(root, "/r", model.ScanConfigSummary{Root: "/r"})

	cfg := DefaultConfig()
	cfg.ReferenceTime = ref
	cfg.MinStaleSize = 1024
	report := Analyze(tree, cfg)

	if len(report.StaleDirectories) != 0 {
		t.Errorf("expected no stale directories when a recent file exists, got %d", len(report.StaleDirectories))
	}
}

func TestMedianBucketCeiling(t *testing.T) {
	buckets := []Bucket{{Name: "A", MaxAge: time.Hour}, {Name: "B", MaxAge: 2 * time.Hour}, {Name: "C", MaxAge: 3 * time.Hour}}
	// 3 files total, ceil(3/2) = 2: bucket A has 1, cumulative 1 < 2;
	// bucket B has 1 more, cumulative 2 >= 2 -> median is B.
	got := medianBucket(buckets, []uint64{1, 1, 1}, 3)
	if got != "B" {
		t.Errorf("expected median bucket B, got %s", got)
	}
}
