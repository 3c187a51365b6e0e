package model

import (
	"testing"
	"time"
)

func buildSampleTree() *Tree {
	now := time.Now()
	a := NewFileNode(1, "a.txt", 300, 8, Timestamps{Modified: now.Add(-time.Hour)}, false)
	b := NewFileNode(2, "b.txt", 100, 8, Timestamps{Modified: now}, false)
	c := NewFileNode(3, "c.txt", 100, 8, Timestamps{Modified: now.Add(-2 * time.Hour)}, false)
	sub := NewDirectoryNode(4, "sub", Timestamps{Modified: now}, []*Node{b, c})
	root := NewDirectoryNode(5, "root", Timestamps{Modified: now}, []*Node{a, sub})
	return NewTree(root, "/r", ScanConfigSummary{Root: "/r"})
}

func TestSortSizeDescTieBreakByName(t *testing.T) {
	tr := buildSampleTree()
	tr.SortAll(SortSizeDesc)

	sub := tr.Root.ChildByName("sub")
	if sub == nil {
		t.Fatal("expected sub directory")
	}
	// b.txt and c.txt are both size 100: tie broken by name ascending.
	if sub.Children[0].Name != "b.txt" || sub.Children[1].Name != "c.txt" {
		t.Errorf("expected b.txt before c.txt on tie, got %s, %s", sub.Children[0].Name, sub.Children[1].Name)
	}
}

func TestSortNameAsc(t *testing.T) {
	tr := buildSampleTree()
	tr.SortAll(SortNameAsc)

	if tr.Root.Children[0].Name != "a.txt" {
		t.Errorf("expected a.txt first under name order, got %s", tr.Root.Children[0].Name)
	}
}

func TestFindByPath(t *testing.T) {
	tr := buildSampleTree()

	if n := tr.FindByPath("/r"); n != tr.Root {
		t.Error("expected root lookup to return tree root")
	}
	if n := tr.FindByPath("/r/sub/b.txt"); n == nil || n.Name != "b.txt" {
		t.Error("expected to find /r/sub/b.txt")
	}
	if n := tr.FindByPath("/r/missing"); n != nil {
		t.Error("expected nil for missing path")
	}
	if n := tr.FindByPath("/other/root"); n != nil {
		t.Error("expected nil for path outside tree root")
	}
}

func TestRecomputeAggregatesAfterSplice(t *testing.T) {
	tr := buildSampleTree()
	sub := tr.Root.ChildByName("sub")

	newFile := NewFileNode(99, "d.txt", 50, 8, Timestamps{Modified: time.Now()}, false)
	sub.Children = append(sub.Children, newFile)
	tr.RecomputeAggregates(nil)

	if sub.Size != 250 {
		t.Errorf("expected sub size 250 after splice, got %d", sub.Size)
	}
	if tr.Root.Size != 550 {
		t.Errorf("expected root size 550 after recompute, got %d", tr.Root.Size)
	}
}
