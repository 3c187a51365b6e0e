package model

import (
	"testing"
	"time"
)

func TestUpdateAggregatesSize(t *testing.T) {
	now := time.Now()
	child1 := NewFileNode(1, "file1.txt", 100, 8, Timestamps{Modified: now}, false)
	child2 := NewFileNode(2, "file2.txt", 200, 8, Timestamps{Modified: now}, false)
	parent := NewDirectoryNode(3, "folder", Timestamps{Modified: now}, []*Node{child1, child2})

	if parent.Size != 300 {
		t.Errorf("expected size 300, got %d", parent.Size)
	}
	if parent.FileCount != 2 {
		t.Errorf("expected file count 2, got %d", parent.FileCount)
	}
	if parent.DirCount != 0 {
		t.Errorf("expected dir count 0, got %d", parent.DirCount)
	}
}

func TestUpdateAggregatesNested(t *testing.T) {
	now := time.Now()
	leaf := NewFileNode(1, "leaf.txt", 10, 8, Timestamps{Modified: now}, false)
	sub := NewDirectoryNode(2, "sub", Timestamps{Modified: now}, []*Node{leaf})
	top := NewDirectoryNode(3, "top", Timestamps{Modified: now}, []*Node{sub})

	if top.Size != 10 {
		t.Errorf("expected size 10, got %d", top.Size)
	}
	if top.FileCount != 1 {
		t.Errorf("expected file count 1, got %d", top.FileCount)
	}
	if top.DirCount != 1 {
		t.Errorf("expected dir count 1, got %d", top.DirCount)
	}
}

func TestWalk(t *testing.T) {
	now := time.Now()
	leaf := NewFileNode(1, "leaf.txt", 10, 8, Timestamps{Modified: now}, false)
	sub := NewDirectoryNode(2, "sub", Timestamps{Modified: now}, []*Node{leaf})
	top := NewDirectoryNode(3, "top", Timestamps{Modified: now}, []*Node{sub})

	var names []string
	top.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})

	want := []string{"top", "sub", "leaf.txt"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}

func TestChildByName(t *testing.T) {
	now := time.Now()
	child := NewFileNode(1, "needle.txt", 1, 8, Timestamps{Modified: now}, false)
	parent := NewDirectoryNode(2, "folder", Timestamps{Modified: now}, []*Node{child})

	if parent.ChildByName("needle.txt") != child {
		t.Error("expected to find needle.txt")
	}
	if parent.ChildByName("missing.txt") != nil {
		t.Error("expected nil for missing child")
	}
}

func TestContentHashIsZero(t *testing.T) {
	var h ContentHash
	if !h.IsZero() {
		t.Error("expected zero-value hash to report IsZero")
	}
	h[0] = 1
	if h.IsZero() {
		t.Error("expected non-zero hash to report !IsZero")
	}
}
