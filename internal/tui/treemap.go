package tui

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"

	"github.com/gravityfile/gravityfile/internal/model"
	"github.com/gravityfile/gravityfile/internal/session"
)

// treemapItem adapts a model.Node to squarify.TreeSizer, the shape the
// squarify algorithm traverses to compute block rectangles.
type treemapItem struct {
	node     *model.Node
	size     float64
	children []*treemapItem
}

func (t *treemapItem) Size() float64         { return t.size }
func (t *treemapItem) NumChildren() int      { return len(t.children) }
func (t *treemapItem) Child(i int) squarify.TreeSizer { return t.children[i] }

const (
	treemapMinBlockWidth  = 6
	treemapMinBlockHeight = 2
	treemapMaxVisible     = 24
)

// renderTreemap renders the treemap layout (SPEC_FULL.md's enrichment
// layout alongside tree/miller): the active tab's view root's direct
// children, squarified into proportional rectangles sized by Size.
func renderTreemap(sess *session.Session, styles Styles, width, height int) string {
	tab := sess.ActiveTab()
	root := sess.Tree.FindByPath(tab.ViewRoot)
	if root == nil || !root.IsDir() || len(root.Children) == 0 {
		return styles.Item.Width(width).Render("no data")
	}

	contentW := width - 2
	contentH := height - 2
	if contentW < 1 {
		contentW = 1
	}
	if contentH < 1 {
		contentH = 1
	}

	children := make([]*model.Node, len(root.Children))
	copy(children, root.Children)
	sort.Slice(children, func(i, j int) bool { return children[i].Size > children[j].Size })
	if len(children) > treemapMaxVisible {
		children = children[:treemapMaxVisible]
	}

	items := make([]*treemapItem, 0, len(children))
	for _, c := range children {
		size := float64(c.Size)
		if size < 1 {
			size = 1
		}
		items = append(items, &treemapItem{node: c, size: size})
	}

	treeRoot := &treemapItem{children: items}
	for _, it := range items {
		treeRoot.size += it.size
	}

	blocks, metas := squarify.Squarify(treeRoot, squarify.Rect{W: float64(contentW), H: float64(contentH)}, squarify.Options{MaxDepth: 1, Sort: true})

	grid := make([][]rune, contentH)
	cellStyle := make([][]*lipgloss.Style, contentH)
	for y := range grid {
		grid[y] = make([]rune, contentW)
		cellStyle[y] = make([]*lipgloss.Style, contentW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	selected := selectedTreemapName(sess)
	for i, b := range blocks {
		if i >= len(metas) || metas[i].Depth != 0 {
			continue
		}
		item, ok := b.TreeSizer.(*treemapItem)
		if !ok || item.node == nil {
			continue
		}
		x0, y0 := int(math.Floor(b.X)), int(math.Floor(b.Y))
		w := int(math.Floor(b.X+b.W)) - x0
		h := int(math.Round(b.Y+b.H)) - y0
		if w < treemapMinBlockWidth || h < treemapMinBlockHeight || x0 >= contentW || y0 >= contentH {
			continue
		}
		if x0+w > contentW {
			w = contentW - x0
		}
		if y0+h > contentH {
			h = contentH - y0
		}
		style := styles.Panel
		if item.node.Name == selected {
			style = styles.ItemSelected
		}
		drawTreemapBlock(grid, cellStyle, x0, y0, w, h, item.node, style)
	}

	var b strings.Builder
	for y := 0; y < contentH; y++ {
		x := 0
		for x < contentW {
			run := cellStyle[y][x]
			start := x
			for x < contentW && cellStyle[y][x] == run {
				x++
			}
			text := string(grid[y][start:x])
			if run != nil {
				b.WriteString(run.Render(text))
			} else {
				b.WriteString(text)
			}
		}
		b.WriteString("\n")
	}

	return styles.Panel.Width(width).Render(b.String())
}

// selectedTreemapName returns the base name of the deepest miller-columns
// selection, so the treemap can echo that selection even though its own
// blocks have no independent cursor.
func selectedTreemapName(sess *session.Session) string {
	tab := sess.ActiveTab()
	if len(tab.Miller.SelectedPerColumn) > 0 {
		return filepath.Base(tab.Miller.SelectedPerColumn[len(tab.Miller.SelectedPerColumn)-1])
	}
	return ""
}

func drawTreemapBlock(grid [][]rune, cellStyle [][]*lipgloss.Style, x0, y0, w, h int, node *model.Node, style lipgloss.Style) {
	for dx := 0; dx < w; dx++ {
		grid[y0][x0+dx] = '─'
		if y0+h-1 < len(grid) {
			grid[y0+h-1][x0+dx] = '─'
		}
	}
	for dy := 0; dy < h; dy++ {
		grid[y0+dy][x0] = '│'
		if x0+w-1 < len(grid[0]) {
			grid[y0+dy][x0+w-1] = '│'
		}
		for dx := 0; dx < w; dx++ {
			cellStyle[y0+dy][x0+dx] = &style
		}
	}

	label := truncate(node.Name, w-2)
	sizeLabel := FormatSize(int64(node.Size))
	if h >= 2 {
		writeText(grid, y0+1, x0+1, w-2, label)
	}
	if h >= 3 {
		writeText(grid, y0+2, x0+1, w-2, sizeLabel)
	}
}

func writeText(grid [][]rune, y, x, maxW int, text string) {
	if y < 0 || y >= len(grid) || maxW <= 0 {
		return
	}
	for i, r := range []rune(text) {
		if i >= maxW || x+i >= len(grid[y]) {
			break
		}
		grid[y][x+i] = r
	}
}
