package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravityfile/gravityfile/internal/age"
	"github.com/gravityfile/gravityfile/internal/duplicate"
	"github.com/gravityfile/gravityfile/internal/ops"
	"github.com/gravityfile/gravityfile/internal/session"
)

const appVersion = "0.1.0"

// resultMsg wraps one ops.Message drained from the Session's merged
// result channel (§5 "All engine result streams are merged into a
// single channel feeding the Session").
type resultMsg struct{ msg ops.Message }

// waitForResult returns a tea.Cmd that blocks for the next message on
// sess.Results(), re-armed after every Update (teacher's scanCompleteMsg
// pattern, generalized to a persistent channel instead of a one-shot
// scan).
func waitForResult(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-sess.Results()
		if !ok {
			return nil
		}
		return resultMsg{msg: msg}
	}
}

// App is the bubbletea root model, adapted from the teacher's App to
// drive a session.Session instead of internal/core, and to render
// four views (Explorer/Duplicates/Age/Errors, §4.G) instead of a
// fixed tree+treemap diff layout.
type App struct {
	sess *session.Session

	header KeyedHeader
	tree   TreePanel
	help   HelpOverlay
	input  textinput.Model

	keys   KeyMap
	styles Styles

	lastErr error

	duplicates *duplicate.Report
	ageReport  *age.Report

	width, height int
}

// KeyedHeader is an alias kept so header.go's View(a *App, ...)
// signature reads naturally from this file without an import cycle.
type KeyedHeader = Header

// NewApp constructs an App around an already-initialized Session.
func NewApp(sess *session.Session) App {
	ti := textinput.New()
	ti.Prompt = ""

	a := App{
		sess:   sess,
		header: NewHeader(appVersion),
		tree:   NewTreePanel(),
		help:   HelpOverlay{},
		input:  ti,
		keys:   DefaultKeyMap(),
		styles: NewStyles(PaletteFor(sess.Theme())),
	}
	a.tree.SetFocused(true)
	return a
}

// Init starts the result-draining loop.
func (a App) Init() tea.Cmd {
	return waitForResult(a.sess)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.header.SetWidth(a.width)
		a.tree.SetSize(a.width, a.height-6)
		return a, nil

	case resultMsg:
		return a.handleResult(msg.msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleResult(msg ops.Message) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case ops.Conflict:
		a.sess.HandleConflict(m)
	case ops.Complete:
		if err := a.sess.CompleteOperation(context.Background(), m); err != nil {
			a.lastErr = err
		}
		a.refreshActiveReport()
	}
	return a, waitForResult(a.sess)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.sess.Mode() == session.ModeConflictResolution {
		return a.handleConflictKey(msg)
	}

	switch a.sess.Mode() {
	case session.ModeCommand, session.ModeSearch, session.ModeRenaming,
		session.ModeCreatingFile, session.ModeCreatingDirectory,
		session.ModeTaking, session.ModeGoingTo:
		return a.handleInputKey(msg)

	case session.ModeHelp:
		if msg.String() == "?" || msg.String() == "esc" {
			a.sess.CancelPendingMode()
		}
		return a, nil

	case session.ModeConfirmDelete:
		return a.handleConfirmDeleteKey(msg)
	}

	return a.handleNormalKey(msg)
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case k == ":":
		a.input.SetValue("")
		a.input.Focus()
		a.sess.EnterCommand()
		return a, nil
	case k == "/":
		a.input.SetValue("")
		a.input.Focus()
		a.sess.EnterSearch()
		return a, nil
	case key.Matches(msg, a.keys.Up):
		switch a.sess.Layout() {
		case session.LayoutMiller:
			return a.millerMoveSelection(-1), nil
		case session.LayoutTreemap:
			return a, nil
		}
		return a.moveSelection(-1), nil
	case key.Matches(msg, a.keys.Down):
		switch a.sess.Layout() {
		case session.LayoutMiller:
			return a.millerMoveSelection(1), nil
		case session.LayoutTreemap:
			return a, nil
		}
		return a.moveSelection(1), nil
	case key.Matches(msg, a.keys.Left):
		if a.sess.Layout() == session.LayoutMiller {
			return a.millerCollapseLeft(), nil
		}
		return a, nil
	case key.Matches(msg, a.keys.Right):
		if a.sess.Layout() == session.LayoutMiller {
			return a.millerDrillRight(), nil
		}
		return a, nil
	case key.Matches(msg, a.keys.Enter):
		switch a.sess.Layout() {
		case session.LayoutMiller:
			return a.millerDrillRight(), nil
		case session.LayoutTreemap:
			return a, nil
		}
		return a.drillIn(), nil
	case key.Matches(msg, a.keys.Top):
		if a.sess.Layout() == session.LayoutTree {
			return a.moveSelection(-a.tree.Len()), nil
		}
		return a, nil
	case key.Matches(msg, a.keys.Bottom):
		if a.sess.Layout() == session.LayoutTree {
			return a.moveSelection(a.tree.Len()), nil
		}
		return a, nil
	case key.Matches(msg, a.keys.Tab):
		return a.dispatch(session.Action{Kind: session.ActionSwitchView, View: (a.sess.View() + 1) % 4}), nil
	case key.Matches(msg, a.keys.Back):
		a.sess.NavigateBack()
		return a, nil
	case key.Matches(msg, a.keys.Root):
		_ = a.sess.GoToRoot()
		return a, nil
	case key.Matches(msg, a.keys.Mark):
		if path, ok := a.selectedEntryPath(); ok {
			a.sess.ToggleMark(path)
		}
		return a, nil
	case key.Matches(msg, a.keys.ClearMarks):
		a.sess.ClearMarks()
		return a, nil
	case key.Matches(msg, a.keys.Yank):
		return a.dispatch(session.Action{Kind: session.ActionYank}), nil
	case key.Matches(msg, a.keys.Cut):
		return a.dispatch(session.Action{Kind: session.ActionCut}), nil
	case key.Matches(msg, a.keys.Paste):
		return a.dispatch(session.Action{Kind: session.ActionPaste}), nil
	case key.Matches(msg, a.keys.Delete):
		return a.dispatch(session.Action{Kind: session.ActionDelete}), nil
	case key.Matches(msg, a.keys.Rename):
		a.startInput(session.ModeRenaming, "")
		return a, nil
	case key.Matches(msg, a.keys.NewFile):
		a.startInput(session.ModeCreatingFile, "")
		return a, nil
	case key.Matches(msg, a.keys.NewDir):
		a.startInput(session.ModeCreatingDirectory, "")
		return a, nil
	case key.Matches(msg, a.keys.Take):
		a.startInput(session.ModeTaking, "")
		return a, nil
	case key.Matches(msg, a.keys.Undo):
		return a.dispatch(session.Action{Kind: session.ActionUndo}), nil
	case key.Matches(msg, a.keys.CycleSort):
		return a.dispatch(session.Action{Kind: session.ActionSetSort, Sort: session.SortCycle}), nil
	case key.Matches(msg, a.keys.Layout):
		return a.dispatch(session.Action{Kind: session.ActionSetLayout}), nil
	case key.Matches(msg, a.keys.Refresh):
		return a.dispatch(session.Action{Kind: session.ActionRefresh}), nil
	case key.Matches(msg, a.keys.Help):
		return a.dispatch(session.Action{Kind: session.ActionShowHelp}), nil
	case key.Matches(msg, a.keys.NextTab):
		a.sess.NextTab()
		return a, nil
	case key.Matches(msg, a.keys.PrevTab):
		a.sess.PrevTab()
		return a, nil
	case key.Matches(msg, a.keys.Quit):
		return a.dispatch(session.Action{Kind: session.ActionQuit}), tea.Quit
	}
	return a, nil
}

func (a App) dispatch(action session.Action) App {
	if err := a.sess.Dispatch(context.Background(), action); err != nil {
		a.lastErr = err
	}
	a.refreshActiveReport()
	return a
}

func (a App) moveSelection(delta int) App {
	tab := a.sess.ActiveTab()
	next := tab.Tree.SelectedIndex + delta
	if next < 0 {
		next = 0
	}
	if next >= a.tree.Len() {
		next = a.tree.Len() - 1
	}
	tab.Tree.SelectedIndex = next
	return a
}

func (a App) drillIn() App {
	path, node, ok := a.tree.At(a.sess.ActiveTab().Tree.SelectedIndex)
	if !ok || node == nil || !node.IsDir() {
		return a
	}
	_ = a.sess.Navigate(path)
	return a
}

// selectedEntryPath returns the currently highlighted entry's path,
// under whichever layout is active.
func (a App) selectedEntryPath() (string, bool) {
	switch a.sess.Layout() {
	case session.LayoutMiller:
		tab := a.sess.ActiveTab()
		chain := tab.Miller.SelectedPerColumn
		if len(chain) == 0 {
			return "", false
		}
		return chain[len(chain)-1], true
	case session.LayoutTreemap:
		// No independent cursor; the treemap has nothing markable of
		// its own.
		return "", false
	default:
		path, _, ok := a.tree.At(a.sess.ActiveTab().Tree.SelectedIndex)
		return path, ok
	}
}

// millerMoveSelection moves the deepest column's highlight among its
// siblings (§4.G "miller_state: selected index in the active column").
func (a App) millerMoveSelection(delta int) App {
	tab := a.sess.ActiveTab()
	chain := tab.Miller.SelectedPerColumn
	if len(chain) == 0 {
		return a
	}
	idx := len(chain) - 1
	parent := millerAncestor(a.sess, idx)
	if parent == nil || len(parent.Children) == 0 {
		return a
	}
	pos := -1
	name := filepath.Base(chain[idx])
	for i, c := range parent.Children {
		if c.Name == name {
			pos = i
			break
		}
	}
	if pos < 0 {
		pos = 0
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(parent.Children) {
		pos = len(parent.Children) - 1
	}
	chain[idx] = filepath.Join(filepath.Dir(chain[idx]), parent.Children[pos].Name)
	return a
}

// millerDrillRight extends the selection chain into the deepest
// column's highlighted child, the miller-columns equivalent of
// expanding one level deeper.
func (a App) millerDrillRight() App {
	tab := a.sess.ActiveTab()
	chain := tab.Miller.SelectedPerColumn
	if len(chain) == 0 {
		return a
	}
	last := chain[len(chain)-1]
	node := a.sess.Tree.FindByPath(last)
	if node == nil || !node.IsDir() || len(node.Children) == 0 {
		return a
	}
	tab.Miller.SelectedPerColumn = append(chain, filepath.Join(last, node.Children[0].Name))
	return a
}

// millerCollapseLeft shrinks the selection chain by one column, the
// miller-columns equivalent of stepping back toward the parent.
func (a App) millerCollapseLeft() App {
	tab := a.sess.ActiveTab()
	if len(tab.Miller.SelectedPerColumn) > 1 {
		tab.Miller.SelectedPerColumn = tab.Miller.SelectedPerColumn[:len(tab.Miller.SelectedPerColumn)-1]
	}
	return a
}

func (a App) startInput(mode session.Mode, initial string) {
	a.input.SetValue(initial)
	a.input.Focus()
	_ = a.sess.Dispatch(context.Background(), modeEntryAction(mode))
}

// modeEntryAction maps a direct mode entry (not reachable through the
// ActionKind vocabulary alone, since Renaming/CreatingFile/etc. are
// entered via dedicated keys rather than command-language tokens) onto
// the Action that produces it.
func modeEntryAction(mode session.Mode) session.Action {
	switch mode {
	case session.ModeRenaming:
		return session.Action{Kind: session.ActionRename}
	case session.ModeCreatingFile:
		return session.Action{Kind: session.ActionCreateFile}
	case session.ModeCreatingDirectory:
		return session.Action{Kind: session.ActionCreateDirectory}
	case session.ModeTaking:
		return session.Action{Kind: session.ActionTake}
	default:
		return session.Action{Kind: session.ActionNone}
	}
}

func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.input.Blur()
		a.input.SetValue("")
		if a.sess.Mode() == session.ModeSearch {
			a.sess.ExitSearch()
		} else {
			a.sess.CancelPendingMode()
		}
		return a, nil
	case "enter":
		return a.submitInput()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.sess.Mode() == session.ModeSearch {
		a.sess.UpdateSearchQuery(a.input.Value())
	}
	return a, cmd
}

func (a App) submitInput() (tea.Model, tea.Cmd) {
	value := a.input.Value()
	mode := a.sess.Mode()
	a.input.Blur()
	a.input.SetValue("")

	switch mode {
	case session.ModeCommand:
		return a.dispatch(session.ParseCommand(value)), nil
	case session.ModeSearch:
		if err := a.sess.SelectSearchResult(); err != nil {
			a.lastErr = err
		}
		return a, nil
	case session.ModeRenaming:
		return a.dispatch(session.Action{Kind: session.ActionRename, Arg: value}), nil
	case session.ModeCreatingFile:
		return a.dispatch(session.Action{Kind: session.ActionCreateFile, Arg: value}), nil
	case session.ModeCreatingDirectory:
		return a.dispatch(session.Action{Kind: session.ActionCreateDirectory, Arg: value}), nil
	case session.ModeTaking:
		return a.dispatch(session.Action{Kind: session.ActionTake, Arg: value}), nil
	case session.ModeGoingTo:
		return a.dispatch(session.Action{Kind: session.ActionNavigateTo, Arg: value}), nil
	}
	return a, nil
}

func (a App) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		return a.dispatch(session.Action{Kind: session.ActionDelete}), nil
	default:
		a.sess.CancelPendingMode()
		return a, nil
	}
}

func (a App) handleConflictKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	resolution, ok := resolutionForKey(msg.String())
	if !ok {
		return a, nil
	}
	a.sess.ResolveConflict(resolution)
	return a, nil
}

func resolutionForKey(k string) (ops.Resolution, bool) {
	switch k {
	case "s":
		return ops.ResolveSkip, true
	case "S":
		return ops.ResolveSkipAll, true
	case "o":
		return ops.ResolveOverwrite, true
	case "O":
		return ops.ResolveOverwriteAll, true
	case "r":
		return ops.ResolveAutoRename, true
	case "esc", "a":
		return ops.ResolveAbort, true
	}
	return 0, false
}

func (a *App) refreshActiveReport() {
	switch a.sess.View() {
	case session.ViewDuplicates:
		a.duplicates = duplicate.Find(a.sess.Tree, duplicate.DefaultConfig())
	case session.ViewAge:
		a.ageReport = age.Analyze(a.sess.Tree, age.DefaultConfig())
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "initializing..."
	}

	header := a.header.View(&a, a.styles)

	var body string
	switch a.sess.View() {
	case session.ViewDuplicates:
		body = renderDuplicates(a.duplicates, a.styles, a.width)
	case session.ViewAge:
		body = renderAge(a.ageReport, a.styles, a.width)
	case session.ViewErrors:
		body = renderErrors(a.sess.Tree, a.styles, a.width)
	default:
		switch a.sess.Layout() {
		case session.LayoutMiller:
			body = renderMiller(a.sess, a.styles, a.width, a.height-6)
		case session.LayoutTreemap:
			body = renderTreemap(a.sess, a.styles, a.width, a.height-6)
		default:
			tab := a.sess.ActiveTab()
			node := a.sess.Tree.FindByPath(tab.ViewRoot)
			a.tree.Rebuild(node, tab.ViewRoot, tab.Tree.Expanded)
			body = a.tree.View(tab.Tree.SelectedIndex, 0, marksSet(a.sess), tab.Tree.Expanded, a.styles)
		}
	}

	footer := a.footer()

	if a.sess.Mode() == session.ModeHelp {
		return a.help.View(a.keys, a.styles, a.width, a.height)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a App) footer() string {
	if a.sess.Mode() == session.ModeCommand || a.sess.Mode() == session.ModeSearch ||
		a.sess.Mode() == session.ModeRenaming || a.sess.Mode() == session.ModeCreatingFile ||
		a.sess.Mode() == session.ModeCreatingDirectory || a.sess.Mode() == session.ModeTaking ||
		a.sess.Mode() == session.ModeGoingTo {
		return a.styles.HelpBar.Render(a.sess.Mode().String() + "> " + a.input.View())
	}
	if conflict := a.sess.ActiveConflict(); conflict != nil {
		return a.styles.Danger.Render(fmt.Sprintf(
			"conflict: %s — [s]kip [S]kip-all [o]verwrite [O]verwrite-all [r]ename [esc]abort", conflict.Destination))
	}
	if a.lastErr != nil {
		return a.styles.Danger.Render(a.lastErr.Error())
	}
	return a.styles.HelpBar.Render(a.sess.Mode().String())
}

func marksSet(sess *session.Session) map[string]bool {
	out := make(map[string]bool)
	for _, p := range sess.Marked() {
		out[p] = true
	}
	return out
}
