package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gravityfile/gravityfile/internal/model"
)

// Header renders the app name, tab bar, scan-root breadcrumb, and
// marked-selection stats (§4.G "Navigation state", "Tab manager").
// Adapted from the teacher's drive-progress header: there is no drive
// concept here (dropped per DESIGN.md), so the second line reports
// the marked set instead of a used/free drive split.
type Header struct {
	width   int
	version string
}

// NewHeader constructs a Header.
func NewHeader(version string) Header {
	return Header{version: version}
}

// SetWidth sets the header's render width.
func (h *Header) SetWidth(w int) { h.width = w }

// View renders the header given the active app state.
func (h Header) View(a *App, styles Styles) string {
	tabs := h.tabBar(a, styles)
	appName := styles.TabActive.Render(" GRAVITYFILE ") + styles.HelpBar.Render(" "+h.version)
	line1 := joinWithGap(appName, tabs, h.width)

	breadcrumb := styles.Stats.Render(a.sess.ActiveTab().ViewRoot)
	var markedStats string
	if marked := a.sess.Marked(); len(marked) > 0 {
		total := markedSize(a.sess.Tree, marked)
		markedStats = styles.Stats.Render(fmt.Sprintf("marked: %d (%s)", len(marked), FormatSize(total)))
	}
	line2 := joinWithGap(breadcrumb, markedStats, h.width)

	sep := styles.HelpBar.Render(strings.Repeat("─", clampWidth(h.width)))
	return lipgloss.JoinVertical(lipgloss.Left, line1, line2, sep)
}

func (h Header) tabBar(a *App, styles Styles) string {
	var b strings.Builder
	for i := 0; i < a.sess.TabCount(); i++ {
		label := fmt.Sprintf(" %d ", i+1)
		if a.sess.ActiveTabIndex() == i {
			b.WriteString(styles.TabActive.Render(label))
		} else {
			b.WriteString(styles.TabInactive.Render(label))
		}
	}
	return b.String()
}

func joinWithGap(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

func clampWidth(w int) int {
	if w < 0 {
		return 0
	}
	return w
}

func markedSize(tree *model.Tree, paths []string) int64 {
	var total int64
	for _, p := range paths {
		if n := tree.FindByPath(p); n != nil {
			total += int64(n.Size)
		}
	}
	return total
}
