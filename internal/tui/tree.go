package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gravityfile/gravityfile/internal/model"
)

const treeSizeBarWidth = 4

// treeEntry pairs a visible node with its absolute path and nesting
// depth, since model.Node carries neither (it has no parent pointer).
type treeEntry struct {
	node  *model.Node
	path  string
	depth int
}

// TreePanel renders the flat tree view (§4.G "tree_state"), adapted
// from the teacher's TreePanel to the new Tree Model (path-less
// nodes, explicit sort order from the tree itself rather than a
// hardcoded by-size comparator) and to multi-selection (marked set)
// instead of a diff overlay.
type TreePanel struct {
	entries []treeEntry
	width   int
	height  int
	focused bool
}

// NewTreePanel constructs an empty TreePanel.
func NewTreePanel() TreePanel { return TreePanel{} }

// SetSize sets the panel's render dimensions.
func (t *TreePanel) SetSize(w, h int) { t.width, t.height = w, h }

// SetFocused sets whether this panel currently has input focus.
func (t *TreePanel) SetFocused(f bool) { t.focused = f }

// Rebuild recomputes the visible entry list for root (the tab's view
// root), honoring expanded's expansion set.
func (t *TreePanel) Rebuild(root *model.Node, rootPath string, expanded map[string]bool) {
	t.entries = nil
	if root == nil {
		return
	}
	t.collect(root, rootPath, 0, expanded)
}

func (t *TreePanel) collect(node *model.Node, path string, depth int, expanded map[string]bool) {
	t.entries = append(t.entries, treeEntry{node: node, path: path, depth: depth})
	if node.IsDir() && expanded[path] {
		for _, c := range node.Children {
			t.collect(c, filepath.Join(path, c.Name), depth+1, expanded)
		}
	}
}

// At returns the entry at the given flat index.
func (t TreePanel) At(idx int) (path string, node *model.Node, ok bool) {
	if idx < 0 || idx >= len(t.entries) {
		return "", nil, false
	}
	return t.entries[idx].path, t.entries[idx].node, true
}

// Len reports how many entries are currently visible.
func (t TreePanel) Len() int { return len(t.entries) }

// View renders entries[offset:offset+height] with selected and marked
// highlighted.
func (t TreePanel) View(selected int, offset int, marked map[string]bool, expanded map[string]bool, styles Styles) string {
	if len(t.entries) == 0 {
		return styles.Panel.Width(t.width).Height(t.height).Render("empty")
	}

	maxVisible := t.height - 2
	if maxVisible < 1 {
		maxVisible = 1
	}

	var lines []string
	for i := offset; i < len(t.entries) && len(lines) < maxVisible; i++ {
		e := t.entries[i]
		lines = append(lines, t.renderLine(e, i == selected, marked[e.path], expanded[e.path], styles))
	}

	style := styles.Panel.Width(t.width).Height(t.height)
	return style.Render(strings.Join(lines, "\n"))
}

func (t TreePanel) renderLine(e treeEntry, selected, marked, expanded bool, styles Styles) string {
	prefix := strings.Repeat("  ", e.depth)
	if e.node.IsDir() {
		if expanded {
			prefix += "▼ "
		} else {
			prefix += "▶ "
		}
	} else {
		prefix += "  "
	}

	mark := "  "
	if marked {
		mark = styles.ItemMarked.Render("✓ ")
	}

	size := FormatSize(int64(e.node.Size))
	line := fmt.Sprintf("%s%s%s %s", mark, prefix, e.node.Name, size)

	width := t.width - 2
	if width < 1 {
		width = 1
	}
	if selected && t.focused {
		return styles.ItemSelected.Width(width).Render(line)
	}
	return styles.Item.Width(width).Render(line)
}
