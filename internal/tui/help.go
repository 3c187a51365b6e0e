package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a centered modal listing the keymap (§4.G
// "help / ?").
type HelpOverlay struct {
	width, height int
}

// View renders the help overlay centered within w x h, given keys.
func (HelpOverlay) View(keys KeyMap, styles Styles, w, h int) string {
	title := styles.HelpKey.Render("Keyboard shortcuts")

	var rows []string
	for _, group := range keys.FullHelp() {
		var parts []string
		for _, b := range group {
			help := b.Help()
			parts = append(parts, styles.HelpKey.Render(help.Key)+" "+styles.HelpBar.Render(help.Desc))
		}
		rows = append(rows, strings.Join(parts, "   "))
	}

	commandHelp := styles.HelpBar.Render(
		"command palette (:): quit refresh cd root back help explorer/duplicates/age/errors\n" +
			"clear details theme layout sort yank/cut/paste delete rename touch/mkdir take undo",
	)

	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, append(rows, "", commandHelp)...)...)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, styles.Modal.Render(body))
}
