package duplicate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gravityfile/gravityfile/internal/model"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// buildTree writes each entry of files to disk under root (keys may
// include one path separator for a single level of subdirectory) and
// assembles a matching model.Tree by hand, for tests that need a real
// Tree without running a full Scanner pass.
func buildTree(t *testing.T, root string, files map[string][]byte) *model.Tree {
	t.Helper()
	now := time.Now()
	var id uint64
	nextID := func() uint64 { id++; return id }

	dirChildren := map[string][]*model.Node{} // "" = top level
	for name, content := range files {
		writeFile(t, root, name, content)
		fn := model.NewFileNode(nextID(), filepath.Base(name), uint64(len(content)), 8, model.Timestamps{Modified: now}, false)
		dir := filepath.Dir(name)
		if dir == "." {
			dir = ""
		}
		dirChildren[dir] = append(dirChildren[dir], fn)
	}

	var top []*model.Node
	for dir, kids := range dirChildren {
		if dir == "" {
			top = append(top, kids...)
			continue
		}
		top = append(top, model.NewDirectoryNode(nextID(), dir, model.Timestamps{Modified: now}, kids))
	}

	rootNode := model.NewDirectoryNode(nextID(), filepath.Base(root), model.Timestamps{Modified: now}, top)
	return model.NewTree(rootNode, root, model.ScanConfigSummary{Root: root})
}

func TestFindDuplicatesAcrossDirectories(t *testing.T) {
	root := t.TempDir()
	blob := make([]byte, 16*1024)
	for i := range blob {
		blob[i] = byte(i % 251)
	}
	tree := buildTree(t, root, map[string][]byte{
		"a/x.bin": blob,
		"b/x.bin": blob,
		"b/y.bin": blob,
		"c/z.bin": append(append([]byte{}, blob...), 0xFF),
	})

	cfg := DefaultConfig()
	cfg.MinSize = 1024
	report := Find(tree, cfg)

	if len(report.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(report.Groups))
	}
	g := report.Groups[0]
	if len(g.Paths) != 3 {
		t.Errorf("expected 3 paths, got %d", len(g.Paths))
	}
	if g.Size != 16384 {
		t.Errorf("expected size 16384, got %d", g.Size)
	}
	if g.WastedBytes != 32768 {
		t.Errorf("expected wasted 32768, got %d", g.WastedBytes)
	}
	if report.TotalWastedSpace != 32768 {
		t.Errorf("expected total wasted 32768, got %d", report.TotalWastedSpace)
	}
}

func TestFindNoDuplicatesBelowMinSize(t *testing.T) {
	root := t.TempDir()
	tree := buildTree(t, root, map[string][]byte{
		"a.txt": []byte("hi"),
		"b.txt": []byte("hi"),
	})
	cfg := DefaultConfig()
	cfg.MinSize = 1024
	report := Find(tree, cfg)
	if len(report.Groups) != 0 {
		t.Errorf("expected 0 groups below min size, got %d", len(report.Groups))
	}
}

func TestGroupsSortedByWastedBytesDescending(t *testing.T) {
	root := t.TempDir()
	small := make([]byte, 2000)
	big := make([]byte, 5000)
	tree := buildTree(t, root, map[string][]byte{
		"s1.bin": small,
		"s2.bin": small,
		"b1.bin": big,
		"b2.bin": big,
		"b3.bin": big,
	})
	cfg := DefaultConfig()
	cfg.MinSize = 1024
	report := Find(tree, cfg)
	if len(report.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(report.Groups))
	}
	if report.Groups[0].WastedBytes < report.Groups[1].WastedBytes {
		t.Error("expected groups sorted by wasted bytes descending")
	}
}
