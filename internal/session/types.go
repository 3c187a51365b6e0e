// Package session implements the Session Core (§4.G): the interactive
// brain that owns navigation, selection, clipboard, and mode state,
// and issues commands to the Scanner, Duplicate/Age Engines, Operation
// Engine, and Undo Log.
//
// Grounded on the teacher's internal/core/{controller,events,state}.go
// (event-channel + snapshot pattern) and
// original_source/crates/gravityfile-tui/src/app/{mod,commands}.rs and
// src/search/state.rs (mode machine, command language, search modes).
package session

import (
	"path/filepath"

	"github.com/gravityfile/gravityfile/internal/model"
)

// Mode is one of the session's disjoint UI states (§4.G "Mode state
// machine"). Input handling is gated by the current mode.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeHelp
	ModeSettings
	ModeCommand
	ModeSearch
	ModeRenaming
	ModeCreatingFile
	ModeCreatingDirectory
	ModeTaking
	ModeGoingTo
	ModeConfirmDelete
	ModeDeleting
	ModeConflictResolution
	ModeCopying
	ModeMoving
	ModeQuit
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeHelp:
		return "help"
	case ModeSettings:
		return "settings"
	case ModeCommand:
		return "command"
	case ModeSearch:
		return "search"
	case ModeRenaming:
		return "renaming"
	case ModeCreatingFile:
		return "creating file"
	case ModeCreatingDirectory:
		return "creating directory"
	case ModeTaking:
		return "taking"
	case ModeGoingTo:
		return "going to"
	case ModeConfirmDelete:
		return "confirm delete"
	case ModeDeleting:
		return "deleting"
	case ModeConflictResolution:
		return "conflict resolution"
	case ModeCopying:
		return "copying"
	case ModeMoving:
		return "moving"
	case ModeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// View selects which analysis the session is currently displaying.
type View uint8

const (
	ViewExplorer View = iota
	ViewDuplicates
	ViewAge
	ViewErrors
)

// Layout selects how the explorer view renders the tree.
type Layout uint8

const (
	LayoutTree Layout = iota
	LayoutMiller
	LayoutTreemap
)

// Theme selects the color palette.
type Theme uint8

const (
	ThemeDark Theme = iota
	ThemeLight
)

// ClipboardMode tags what a Clipboard holds, and doubles as the
// pending-operation's intent (Copy vs. Cut/Move) per §4.G "Pending
// operation".
type ClipboardMode uint8

const (
	ClipboardEmpty ClipboardMode = iota
	ClipboardCopy
	ClipboardCut
)

// Clipboard is the session's single clipboard slot (§4.G "Clipboard").
type Clipboard struct {
	Mode   ClipboardMode
	Paths  []string
	Origin string
}

// ViewSnapshot is one entry of a navigation history stack: the view
// root, the selected index within it, and which directories were
// expanded (§4.G "Navigation state").
type ViewSnapshot struct {
	ViewRoot      string
	SelectedIndex int
	Expanded      map[string]bool
}

func cloneExpanded(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TreeState is the flat-tree layout's cursor and expansion state.
type TreeState struct {
	SelectedIndex int
	Expanded      map[string]bool
}

func newTreeState() TreeState {
	return TreeState{Expanded: make(map[string]bool)}
}

// MillerState is the miller-columns layout's state: one selected path
// per visible column, deepest last.
type MillerState struct {
	SelectedPerColumn []string
}

// PendingOperation holds a paste or delete that a pre-flight conflict
// paused, so the resolved Conflict.Respond channel and remaining
// arguments can be recovered when the Session Core supplies a
// resolution (§4.G "Pending operation").
type PendingOperation struct {
	Mode        ClipboardMode // Copy or Cut(Move); unused for Delete
	Sources     []string
	Destination string
	IsDelete    bool
}

// Tab is one independent navigation context: its own path, view root,
// and history stacks (§4.G "Tab manager").
type Tab struct {
	Path           string
	ViewRoot       string
	History        []ViewSnapshot
	ForwardHistory []ViewSnapshot
	Tree           TreeState
	Miller         MillerState
}

// NewTab constructs a tab rooted and viewing at path.
func NewTab(path string) *Tab {
	return &Tab{Path: path, ViewRoot: path, Tree: newTreeState()}
}

// pushHistory pushes the tab's current view state onto History and
// clears ForwardHistory (a fresh drill invalidates any old "forward").
func (t *Tab) pushHistory() {
	t.History = append(t.History, ViewSnapshot{
		ViewRoot:      t.ViewRoot,
		SelectedIndex: t.Tree.SelectedIndex,
		Expanded:      cloneExpanded(t.Tree.Expanded),
	})
	t.ForwardHistory = nil
}

// back pops the most recent history entry and restores it, pushing
// the current state onto ForwardHistory. Returns false if there is no
// history to pop.
func (t *Tab) back() bool {
	if len(t.History) == 0 {
		return false
	}
	t.ForwardHistory = append(t.ForwardHistory, ViewSnapshot{
		ViewRoot:      t.ViewRoot,
		SelectedIndex: t.Tree.SelectedIndex,
		Expanded:      cloneExpanded(t.Tree.Expanded),
	})
	last := t.History[len(t.History)-1]
	t.History = t.History[:len(t.History)-1]
	t.restore(last)
	return true
}

// forward is the inverse of back.
func (t *Tab) forward() bool {
	if len(t.ForwardHistory) == 0 {
		return false
	}
	t.History = append(t.History, ViewSnapshot{
		ViewRoot:      t.ViewRoot,
		SelectedIndex: t.Tree.SelectedIndex,
		Expanded:      cloneExpanded(t.Tree.Expanded),
	})
	last := t.ForwardHistory[len(t.ForwardHistory)-1]
	t.ForwardHistory = t.ForwardHistory[:len(t.ForwardHistory)-1]
	t.restore(last)
	return true
}

func (t *Tab) restore(s ViewSnapshot) {
	t.ViewRoot = s.ViewRoot
	t.Tree.SelectedIndex = s.SelectedIndex
	t.Tree.Expanded = cloneExpanded(s.Expanded)
}

// switchToMiller translates the tree view's cursor (a selected node
// path) into a miller-columns selection, re-seating ViewRoot to that
// node's parent if the tree cursor was on a file (§4.G "Selection &
// marking": "re-seating view_root to the selected item's parent if
// necessary").
func (t *Tab) switchToMiller(tree *model.Tree, selectedPath string) {
	node := tree.FindByPath(selectedPath)
	if node != nil && !node.IsDir() {
		t.ViewRoot = filepath.Dir(selectedPath)
	}
	t.Miller = MillerState{SelectedPerColumn: []string{selectedPath}}
}

// switchToTree leaves miller columns for the tree layout: when a miller
// selection exists, the tree cursor is reset to the first row.
// selectedPath is not translated into a tree-view index.
func (t *Tab) switchToTree(selectedPath string) {
	if len(t.Miller.SelectedPerColumn) == 0 {
		return
	}
	t.Tree.SelectedIndex = 0
	if t.Tree.Expanded == nil {
		t.Tree.Expanded = make(map[string]bool)
	}
}
