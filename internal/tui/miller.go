package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravityfile/gravityfile/internal/model"
	"github.com/gravityfile/gravityfile/internal/session"
)

// renderMiller renders the miller-columns layout (GLOSSARY "Miller
// columns": a navigation layout showing parent, current, and preview
// columns side by side). The active tab's Miller.SelectedPerColumn
// chain (§4.G "Selection & marking") supplies which child is
// highlighted in each successive column.
func renderMiller(sess *session.Session, styles Styles, width, height int) string {
	tab := sess.ActiveTab()
	root := sess.Tree.FindByPath(tab.ViewRoot)
	if root == nil || !root.IsDir() {
		return styles.Item.Width(width).Render("no data")
	}

	const numColumns = 3
	colWidth := width / numColumns
	if colWidth < 12 {
		colWidth = 12
	}

	cols := []string{renderColumn(root, selectionAt(tab.Miller.SelectedPerColumn, 0), styles, colWidth, height)}

	cursor := root
	for i := 0; i < numColumns-1; i++ {
		sel := selectionAt(tab.Miller.SelectedPerColumn, i)
		if sel == "" {
			break
		}
		child := cursor.ChildByName(filepath.Base(sel))
		if child == nil {
			break
		}
		if !child.IsDir() {
			cols = append(cols, renderPreviewFile(child, styles, colWidth, height))
			break
		}
		cols = append(cols, renderColumn(child, selectionAt(tab.Miller.SelectedPerColumn, i+1), styles, colWidth, height))
		cursor = child
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func selectionAt(chain []string, idx int) string {
	if idx < 0 || idx >= len(chain) {
		return ""
	}
	return chain[idx]
}

// millerAncestor returns the node whose children the chain's idx-th
// selection is drawn from: the view root for idx 0, the (idx-1)th
// selection's node otherwise.
func millerAncestor(sess *session.Session, idx int) *model.Node {
	tab := sess.ActiveTab()
	cursor := sess.Tree.FindByPath(tab.ViewRoot)
	for i := 0; i < idx; i++ {
		sel := selectionAt(tab.Miller.SelectedPerColumn, i)
		if cursor == nil || sel == "" {
			return cursor
		}
		cursor = cursor.ChildByName(filepath.Base(sel))
	}
	return cursor
}

// renderColumn lists dir's direct children, highlighting the one whose
// path is selected.
func renderColumn(dir *model.Node, selected string, styles Styles, width, height int) string {
	var b strings.Builder
	selectedName := filepath.Base(selected)
	for i, c := range dir.Children {
		if height > 0 && i >= height {
			break
		}
		marker := "  "
		if c.IsDir() {
			marker = "▸ "
		}
		line := fmt.Sprintf("%s%-*s %s", marker, width-14, truncate(c.Name, width-14), FormatSize(int64(c.Size)))
		if selected != "" && c.Name == selectedName {
			b.WriteString(styles.ItemSelected.Width(width).Render(line))
		} else {
			b.WriteString(styles.Item.Width(width).Render(line))
		}
		b.WriteString("\n")
	}
	return styles.Panel.Width(width).Render(b.String())
}

// renderPreviewFile renders the preview column's content when the
// deepest selection is a file rather than a directory: its size and
// modified time instead of a child listing.
func renderPreviewFile(n *model.Node, styles Styles, width, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", n.Name)
	fmt.Fprintf(&b, "size: %s\n", FormatSize(int64(n.Size)))
	fmt.Fprintf(&b, "modified: %s\n", n.Timestamps.Modified.Format("2006-01-02 15:04"))
	if n.IsSymlink() {
		fmt.Fprintf(&b, "-> %s\n", n.SymlinkTarget)
	}
	return styles.Panel.Width(width).Render(b.String())
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
