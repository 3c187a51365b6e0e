package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gravityfile/gravityfile/internal/logging"
	"github.com/gravityfile/gravityfile/internal/model"
	"github.com/gravityfile/gravityfile/internal/ops"
	"github.com/gravityfile/gravityfile/internal/scanner"
	"github.com/gravityfile/gravityfile/internal/undo"
)

// resultChannelSize bounds the merged engine-result channel every
// dispatched operation is forwarded into (§5 "All engine result
// streams are merged into a single channel feeding the Session").
const resultChannelSize = 64

// Session is the Session Core (§4.G): the interactive brain owning all
// mutable UI state, wired to the Scanner, Operation Engine, and Undo
// Log.
type Session struct {
	ScanRoot     string
	Tree         *model.Tree
	scannedCache map[string]*model.Tree

	scanner   scanner.Scanner
	opsEngine *ops.Engine
	undoLog   *undo.Log

	tabs      []*Tab
	activeTab int

	mode           Mode
	view           View
	layout         Layout
	theme          Theme
	sort           model.SortOrder
	marked         map[string]bool
	clipboard      Clipboard
	pending        *PendingOperation
	activeConflict *ops.Conflict
	search         searchState

	results chan ops.Message
}

// New constructs a Session rooted and initially viewing at root, with
// tree as its already-scanned (or quick-listed) starting tree.
func New(root string, tree *model.Tree, sc scanner.Scanner, maxUndo int) *Session {
	log := undo.NewLog(maxUndo)
	return &Session{
		ScanRoot:     root,
		Tree:         tree,
		scannedCache: make(map[string]*model.Tree),
		scanner:      sc,
		opsEngine:    ops.NewEngine(log),
		undoLog:      log,
		tabs:         []*Tab{NewTab(root)},
		activeTab:    0,
		mode:         ModeNormal,
		view:         ViewExplorer,
		layout:       LayoutTree,
		theme:        ThemeDark,
		sort:         model.SortSizeDesc,
		marked:       make(map[string]bool),
		search:       newSearchState(),
		results:      make(chan ops.Message, resultChannelSize),
	}
}

// Mode, View, Layout, Theme, Sort are read-only accessors for renderers.
func (s *Session) Mode() Mode             { return s.mode }
func (s *Session) View() View             { return s.view }
func (s *Session) Layout() Layout         { return s.layout }
func (s *Session) Theme() Theme           { return s.theme }
func (s *Session) Sort() model.SortOrder  { return s.sort }
func (s *Session) Clipboard() Clipboard   { return s.clipboard }
func (s *Session) Pending() *PendingOperation { return s.pending }
func (s *Session) UndoLog() *undo.Log         { return s.undoLog }

// ActiveConflict returns the conflict currently pausing an in-flight
// paste or delete, or nil if none is pending.
func (s *Session) ActiveConflict() *ops.Conflict { return s.activeConflict }

// Results is the merged engine-result stream every dispatched
// operation feeds into; the Session's run loop consumes one at a time.
func (s *Session) Results() <-chan ops.Message { return s.results }

func (s *Session) setMode(m Mode) {
	if s.mode != m {
		logging.Debug.Printf("[Session] mode %s -> %s", s.mode, m)
	}
	s.mode = m
}

// forwardResults relays every message from ch into the Session's
// merged results channel, stopping at Complete.
func (s *Session) forwardResults(ch <-chan ops.Message) {
	go func() {
		for msg := range ch {
			s.results <- msg
		}
	}()
}

// Dispatch applies a parsed Action to the Session, per §4.G's command
// language and mode state machine. ctx governs any operation the
// action launches.
func (s *Session) Dispatch(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionNone:
		return nil

	case ActionQuit:
		s.setMode(ModeQuit)

	case ActionRefresh:
		s.ClearMarks()
		return s.refresh(ctx)

	case ActionNavigateTo:
		return s.Navigate(s.resolvePath(action.Arg))

	case ActionGoToRoot:
		return s.GoToRoot()

	case ActionNavigateBack:
		s.NavigateBack()

	case ActionShowHelp:
		s.setMode(ModeHelp)

	case ActionSwitchView:
		s.view = action.View
		s.setMode(ModeNormal)

	case ActionClearMarks:
		s.ClearMarks()

	case ActionToggleDetails:
		// No details panel exists in the tui package either, so this
		// action has no effect.

	case ActionSetTheme:
		if action.Theme == s.theme {
			if s.theme == ThemeDark {
				s.theme = ThemeLight
			} else {
				s.theme = ThemeDark
			}
		} else {
			s.theme = action.Theme
		}

	case ActionSetLayout:
		target := action.Layout
		if action.Layout == s.layout {
			target = nextLayout(s.layout)
		}
		s.SetLayout(target, s.selectedPath())

	case ActionSetSort:
		s.sort = ToModelSortOrder(action.Sort, s.sort)
		s.Tree.SortAll(s.sort)

	case ActionYank:
		s.Yank(s.selectionOrMarked(), s.activeTabPtr().ViewRoot)

	case ActionCut:
		s.Cut(s.selectionOrMarked(), s.activeTabPtr().ViewRoot)

	case ActionPaste:
		return s.paste(ctx)

	case ActionDelete:
		if s.mode != ModeConfirmDelete {
			s.setMode(ModeConfirmDelete)
			return nil
		}
		return s.deleteMarked(ctx)

	case ActionRename:
		if action.Arg == "" {
			s.setMode(ModeRenaming)
			return nil
		}
		return s.rename(ctx, action.Arg)

	case ActionCreateFile:
		if action.Arg == "" {
			s.setMode(ModeCreatingFile)
			return nil
		}
		return s.createFile(ctx, action.Arg)

	case ActionCreateDirectory:
		if action.Arg == "" {
			s.setMode(ModeCreatingDirectory)
			return nil
		}
		return s.createDirectory(ctx, action.Arg)

	case ActionTake:
		return s.take(ctx, action.Arg)

	case ActionUndo:
		return s.Undo(ctx)
	}
	return nil
}

// CancelPendingMode returns to Normal from any of the modal input
// modes without performing their action (§4.G mode diagram's implicit
// "esc returns to Normal" edge from every leaf state).
func (s *Session) CancelPendingMode() {
	s.setMode(ModeNormal)
}

// selectedPath is a placeholder seam for the tui layer: callers that
// need the literal current cursor path pass it explicitly to the
// selection/layout helpers; Dispatch only needs it for actions whose
// argument already is the selection.
func (s *Session) selectedPath() string {
	tab := s.activeTabPtr()
	if len(tab.Miller.SelectedPerColumn) > 0 {
		return tab.Miller.SelectedPerColumn[len(tab.Miller.SelectedPerColumn)-1]
	}
	return tab.ViewRoot
}

// nextLayout advances the explorer layout cycle: tree -> miller ->
// treemap -> tree (§4.G "layout tree/miller/toggle", extended with the
// treemap enrichment layout).
func nextLayout(l Layout) Layout {
	switch l {
	case LayoutTree:
		return LayoutMiller
	case LayoutMiller:
		return LayoutTreemap
	default:
		return LayoutTree
	}
}

func (s *Session) selectionOrMarked() []string {
	if len(s.marked) > 0 {
		return s.Marked()
	}
	return []string{s.selectedPath()}
}

// refresh starts a full scan of the active tab's view root and, on
// completion, caches and splices it in.
func (s *Session) refresh(ctx context.Context) error {
	tab := s.activeTabPtr()
	cfg := scanner.DefaultConfig(tab.ViewRoot)
	tree, err := s.scanner.Scan(ctx, cfg)
	if err != nil {
		return err
	}
	s.CacheScan(tab.ViewRoot, tree)
	return nil
}

// take performs mkdir followed by cd into the new directory (§4.G
// "take [name]").
func (s *Session) take(ctx context.Context, name string) error {
	if name == "" {
		s.setMode(ModeTaking)
		return nil
	}
	tab := s.activeTabPtr()
	target := filepath.Join(tab.ViewRoot, name)
	ch := s.opsEngine.CreateDirectory(ctx, target)
	s.forwardResults(ch)
	s.setMode(ModeNormal)
	return s.Navigate(target)
}

// rename renames the current selection's file system entry to
// newName, via the Operation Engine.
func (s *Session) rename(ctx context.Context, newName string) error {
	source := s.selectedPath()
	if err := validateNewName(newName); err != nil {
		return err
	}
	ch := s.opsEngine.Rename(ctx, source, newName)
	s.forwardResults(ch)
	s.setMode(ModeNormal)
	return nil
}

func validateNewName(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	return nil
}

// createFile creates an empty file named name inside the active tab's
// view root.
func (s *Session) createFile(ctx context.Context, name string) error {
	target := filepath.Join(s.activeTabPtr().ViewRoot, name)
	ch := s.opsEngine.CreateFile(ctx, target)
	s.forwardResults(ch)
	s.setMode(ModeNormal)
	return nil
}

// createDirectory creates an empty directory named name inside the
// active tab's view root.
func (s *Session) createDirectory(ctx context.Context, name string) error {
	target := filepath.Join(s.activeTabPtr().ViewRoot, name)
	ch := s.opsEngine.CreateDirectory(ctx, target)
	s.forwardResults(ch)
	s.setMode(ModeNormal)
	return nil
}

// deleteMarked permanently deletes the marked paths (or, absent any
// marks, the current selection), once the user has confirmed via
// ModeConfirmDelete (§4.G mode diagram: "ConfirmDelete -> Deleting").
func (s *Session) deleteMarked(ctx context.Context) error {
	paths := s.selectionOrMarked()
	s.setMode(ModeDeleting)
	ch := s.opsEngine.Delete(ctx, paths)
	s.forwardResults(ch)
	s.ClearMarks()
	return nil
}

// EnterCommand switches to Command mode (the `:` command palette),
// entered via a dedicated UI key rather than produced by the command
// language itself.
func (s *Session) EnterCommand() {
	s.setMode(ModeCommand)
}

// EnterSearch switches to Search mode, entered via a dedicated UI key
// rather than the command language (§4.G "Search").
func (s *Session) EnterSearch() {
	s.search.activate()
	s.setMode(ModeSearch)
}

// ExitSearch leaves Search mode without navigating.
func (s *Session) ExitSearch() {
	s.search.deactivate()
	s.setMode(ModeNormal)
}

// SetSearchMode cycles or sets the active search mode (fuzzy/glob/regex).
func (s *Session) SetSearchMode(mode SearchMode) {
	s.search.mode = mode
	s.search.setQuery(s.Tree, s.activeTabPtr().ViewRoot, s.search.query)
}

// UpdateSearchQuery re-runs the search against the active tab's view
// root using the live query text.
func (s *Session) UpdateSearchQuery(query string) {
	s.search.setQuery(s.Tree, s.activeTabPtr().ViewRoot, query)
}

// SearchResults exposes the live result set for rendering.
func (s *Session) SearchResults() []SearchResult {
	return s.search.results
}

// SelectSearchResult leaves Search mode and navigates view_root to the
// selected result's parent directory. The cursor is reset to the first
// row there; it is not moved onto the result itself.
func (s *Session) SelectSearchResult() error {
	path, ok := s.search.selectedResult()
	if !ok {
		s.ExitSearch()
		return nil
	}
	s.ExitSearch()
	return s.Navigate(filepath.Dir(path))
}

// paste dispatches the clipboard's paths to the Operation Engine as a
// copy or move into the active tab's view root (§4.G "Clipboard").
func (s *Session) paste(ctx context.Context) error {
	if s.clipboard.Mode == ClipboardEmpty || len(s.clipboard.Paths) == 0 {
		return nil
	}
	dest := s.activeTabPtr().ViewRoot

	switch s.clipboard.Mode {
	case ClipboardCopy:
		s.setMode(ModeCopying)
		ch := s.opsEngine.Copy(ctx, s.clipboard.Paths, dest, ops.CopyOptions{})
		s.forwardResults(ch)
	case ClipboardCut:
		s.setMode(ModeMoving)
		ch := s.opsEngine.Move(ctx, s.clipboard.Paths, dest, ops.MoveOptions{})
		s.forwardResults(ch)
	}
	return nil
}

// CompleteOperation is called by the run loop when a Complete message
// is drained from Results(), returning the Session to Normal mode and
// refreshing the destination (§4.G: "on operation completion, the
// Session transitions back to Normal and optionally re-scans").
func (s *Session) CompleteOperation(ctx context.Context, c ops.Complete) error {
	s.setMode(ModeNormal)
	if c.Kind == ops.KindMove && c.Succeeded > 0 {
		s.ClearClipboard()
	}
	if c.Succeeded > 0 {
		return s.refresh(ctx)
	}
	return nil
}

// HandleConflict records conflict as the Session's pending state and
// enters ModeConflictResolution, per §4.G "Pending operation": the
// Session stores the paused paste's sources, destination, and mode
// until a resolution is supplied. Called by the run loop as soon as a
// Conflict is drained from Results(), so Mode()/Pending()/
// ActiveConflict() are authoritative for the whole pause, not just a
// TUI-local copy of the same state.
func (s *Session) HandleConflict(conflict ops.Conflict) {
	s.activeConflict = &conflict
	s.pending = &PendingOperation{
		Mode:        s.clipboard.Mode,
		Sources:     s.clipboard.Paths,
		Destination: filepath.Dir(conflict.Destination),
	}
	s.setMode(ModeConflictResolution)
}

// ResolveConflict answers the active paused Conflict with resolution.
func (s *Session) ResolveConflict(resolution ops.Resolution) {
	if s.activeConflict == nil {
		return
	}
	s.activeConflict.Respond <- resolution
	s.activeConflict = nil
	s.pending = nil
	s.setMode(ModeNormal)
}

// Undo pops the most recent undoable entry from the Undo Log and
// inverts it, per §4.F / original_source's execute_undo.
func (s *Session) Undo(ctx context.Context) error {
	entry, ok := s.undoLog.Pop()
	if !ok {
		return nil
	}
	op := entry.Operation

	switch op.Kind {
	case undo.KindFilesMoved:
		for _, pair := range op.Moves {
			if err := os.Rename(pair.NewPath, pair.OldPath); err != nil {
				return err
			}
		}

	case undo.KindFilesCopied:
		for _, path := range op.Created {
			if err := os.RemoveAll(path); err != nil {
				return err
			}
		}

	case undo.KindFilesDeleted:
		if len(op.Trash) == 0 {
			return fmt.Errorf("cannot undo a permanent deletion")
		}
		for _, pair := range op.Trash {
			if err := os.Rename(pair.TrashPath, pair.OriginalPath); err != nil {
				return err
			}
		}

	case undo.KindFileRenamed:
		oldPath := filepath.Join(filepath.Dir(op.Path), op.OldName)
		newPath := filepath.Join(filepath.Dir(op.Path), op.NewName)
		if err := os.Rename(newPath, oldPath); err != nil {
			return err
		}

	case undo.KindFileCreated, undo.KindDirectoryCreated:
		if err := os.RemoveAll(op.Path); err != nil {
			return err
		}
	}

	return s.refresh(ctx)
}
