package model

import (
	"testing"
	"time"
)

func buildExportFixture() *Tree {
	now := time.Now()
	leaf := NewFileNode(1, "leaf.txt", 10, 8, Timestamps{Modified: now}, false)
	sub := NewDirectoryNode(2, "sub", Timestamps{Modified: now}, []*Node{leaf})
	root := NewDirectoryNode(3, "top", Timestamps{Modified: now}, []*Node{sub})

	cfg := ScanConfigSummary{
		Root:           "/top",
		MaxDepth:       -1,
		IncludeHidden:  true,
		FollowSymlinks: false,
		Threads:        4,
		IgnorePatterns: []string{"*.tmp"},
	}
	tree := NewTree(root, "/top", cfg)
	tree.ScanDur = 42 * time.Millisecond
	tree.Stats = Stats{
		TotalFiles:   1,
		TotalDirs:    2,
		TotalSize:    10,
		MaxDepth:     2,
		LargestFiles: []LargestFile{{Path: "/top/sub/leaf.txt", Size: 10}},
	}
	tree.Warnings = []Warning{{Kind: WarningPermissionDenied, Path: "/top/locked", Message: "denied"}}
	return tree
}

func TestExportImportRoundTrip(t *testing.T) {
	tree := buildExportFixture()

	data, err := tree.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	got, err := ImportTree(data)
	if err != nil {
		t.Fatalf("ImportTree failed: %v", err)
	}

	if got.RootPath != tree.RootPath {
		t.Errorf("RootPath: got %q, want %q", got.RootPath, tree.RootPath)
	}
	if got.ScanDur != tree.ScanDur {
		t.Errorf("ScanDur: got %v, want %v", got.ScanDur, tree.ScanDur)
	}
	if got.Sort != tree.Sort {
		t.Errorf("Sort: got %v, want %v", got.Sort, tree.Sort)
	}
	if got.Stats.TotalSize != tree.Stats.TotalSize || got.Stats.TotalFiles != tree.Stats.TotalFiles {
		t.Errorf("Stats mismatch: got %+v, want %+v", got.Stats, tree.Stats)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Path != "/top/locked" {
		t.Errorf("Warnings mismatch: got %+v", got.Warnings)
	}
	if got.Config.Root != tree.Config.Root || len(got.Config.IgnorePatterns) != 1 {
		t.Errorf("Config mismatch: got %+v", got.Config)
	}

	var names []string
	got.Root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	want := []string{"top", "sub", "leaf.txt"}
	if len(names) != len(want) {
		t.Fatalf("node names: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("node names: got %v, want %v", names, want)
		}
	}
}

func TestImportTreeRecomputesNextNodeID(t *testing.T) {
	tree := buildExportFixture()
	data, err := tree.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	got, err := ImportTree(data)
	if err != nil {
		t.Fatalf("ImportTree failed: %v", err)
	}

	id := got.NextNodeID()
	if id <= 3 {
		t.Errorf("expected NextNodeID to continue past the highest imported id (3), got %d", id)
	}
}

func TestImportTreeRejectsInvalidJSON(t *testing.T) {
	if _, err := ImportTree([]byte("not json")); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
