package tui

import (
	"testing"
	"time"

	"github.com/gravityfile/gravityfile/internal/model"
)

func buildPanelFixture() (*model.Node, string) {
	now := time.Now()
	leaf := model.NewFileNode(1, "leaf.txt", 10, 8, model.Timestamps{Modified: now}, false)
	sub := model.NewDirectoryNode(2, "sub", model.Timestamps{Modified: now}, []*model.Node{leaf})
	other := model.NewFileNode(3, "other.txt", 5, 8, model.Timestamps{Modified: now}, false)
	root := model.NewDirectoryNode(4, "root", model.Timestamps{Modified: now}, []*model.Node{sub, other})
	return root, "/root"
}

func TestTreePanelRebuildCollapsed(t *testing.T) {
	root, rootPath := buildPanelFixture()
	var panel TreePanel
	panel.Rebuild(root, rootPath, map[string]bool{})

	if panel.Len() != 1 {
		t.Fatalf("collapsed panel Len() = %d, want 1 (root only)", panel.Len())
	}
	path, node, ok := panel.At(0)
	if !ok || path != rootPath || node.Name != "root" {
		t.Errorf("At(0) = (%q, %v, %v), want (%q, root, true)", path, node, ok, rootPath)
	}
}

func TestTreePanelRebuildExpanded(t *testing.T) {
	root, rootPath := buildPanelFixture()
	var panel TreePanel
	panel.Rebuild(root, rootPath, map[string]bool{rootPath: true})

	if panel.Len() != 3 {
		t.Fatalf("expanded panel Len() = %d, want 3 (root, sub, other.txt)", panel.Len())
	}
	_, node1, _ := panel.At(1)
	_, node2, _ := panel.At(2)
	if node1.Name != "sub" || node2.Name != "other.txt" {
		t.Errorf("expected children in declared order, got %q then %q", node1.Name, node2.Name)
	}
}

func TestTreePanelAtOutOfRange(t *testing.T) {
	root, rootPath := buildPanelFixture()
	var panel TreePanel
	panel.Rebuild(root, rootPath, nil)

	if _, _, ok := panel.At(-1); ok {
		t.Error("At(-1) should report ok=false")
	}
	if _, _, ok := panel.At(99); ok {
		t.Error("At(99) should report ok=false")
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1000, "1.0 kB"},
		{-1000, "-1.0 kB"},
	}
	for _, c := range cases {
		if got := FormatSize(c.in); got != c.want {
			t.Errorf("FormatSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
