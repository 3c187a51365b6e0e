// Package tui is the terminal front-end, driving internal/session
// instead of internal/core (§9 "Rendering collaborator").
//
// Grounded on the teacher's internal/ui/{app,keys,styles,header,help,
// tree}.go, adapted to the Session Core's mode machine and command
// language (§4.G) in place of the teacher's fixed two-panel diff view.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the Normal-mode keyboard shortcuts. Most bindings are
// a convenience alias for a command-language string (§4.G "Command
// language"); the command palette (`:`) accepts the same vocabulary
// typed out.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Tab      key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Enter    key.Binding
	Back     key.Binding
	Root     key.Binding
	Refresh  key.Binding
	Mark     key.Binding
	ClearMarks key.Binding
	Yank     key.Binding
	Cut      key.Binding
	Paste    key.Binding
	Delete   key.Binding
	Rename   key.Binding
	NewFile  key.Binding
	NewDir   key.Binding
	Take     key.Binding
	Undo     key.Binding
	Details  key.Binding
	CycleSort key.Binding
	Layout   key.Binding
	Search   key.Binding
	Command  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle view")),
		NextTab:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev tab")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "back")),
		Root:       key.NewBinding(key.WithKeys("~"), key.WithHelp("~", "scan root")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Mark:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		ClearMarks: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear marks")),
		Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank")),
		Cut:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cut")),
		Paste:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Rename:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename")),
		NewFile:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new file")),
		NewDir:     key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new dir")),
		Take:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "take")),
		Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Details:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		CycleSort:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Layout:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle layout")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Command:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns a brief help string for the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Command, k.Help, k.Quit}
}

// FullHelp returns the full help modal's grouped bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Tab, k.NextTab, k.PrevTab, k.Enter, k.Back, k.Root},
		{k.Mark, k.ClearMarks, k.Yank, k.Cut, k.Paste, k.Delete},
		{k.Rename, k.NewFile, k.NewDir, k.Take, k.Undo},
		{k.Details, k.CycleSort, k.Layout, k.Search, k.Command},
		{k.Refresh, k.Help, k.Quit},
	}
}
