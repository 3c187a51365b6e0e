package session

import (
	"context"
	"testing"
	"time"

	"github.com/gravityfile/gravityfile/internal/model"
	"github.com/gravityfile/gravityfile/internal/scanner"
)

// fakeScanner is a minimal scanner.Scanner for exercising Session
// without touching the filesystem.
type fakeScanner struct {
	quickList map[string]*model.Tree
}

func (f *fakeScanner) Scan(ctx context.Context, cfg scanner.Config) (*model.Tree, error) {
	return f.QuickList(cfg.Root)
}

func (f *fakeScanner) Progress() <-chan scanner.Progress {
	ch := make(chan scanner.Progress)
	close(ch)
	return ch
}

func (f *fakeScanner) QuickList(dir string) (*model.Tree, error) {
	if t, ok := f.quickList[dir]; ok {
		return t, nil
	}
	root := model.NewDirectoryNode(1, dir, model.Timestamps{Modified: time.Now()}, nil)
	return model.NewTree(root, dir, model.ScanConfigSummary{Root: dir}), nil
}

// buildTestTree constructs: /root/{sub/{leaf.txt}, other.txt}
func buildTestTree() *model.Tree {
	now := time.Now()
	leaf := model.NewFileNode(1, "leaf.txt", 10, 8, model.Timestamps{Modified: now}, false)
	sub := model.NewDirectoryNode(2, "sub", model.Timestamps{Modified: now}, []*model.Node{leaf})
	other := model.NewFileNode(3, "other.txt", 5, 8, model.Timestamps{Modified: now}, false)
	root := model.NewDirectoryNode(4, "root", model.Timestamps{Modified: now}, []*model.Node{sub, other})
	return model.NewTree(root, "/root", model.ScanConfigSummary{Root: "/root"})
}

func newTestSession() *Session {
	tree := buildTestTree()
	sc := &fakeScanner{quickList: map[string]*model.Tree{}}
	return New("/root", tree, sc, 10)
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession()
	if s.Mode() != ModeNormal {
		t.Errorf("initial Mode = %v, want ModeNormal", s.Mode())
	}
	if s.View() != ViewExplorer {
		t.Errorf("initial View = %v, want ViewExplorer", s.View())
	}
	if s.Layout() != LayoutTree {
		t.Errorf("initial Layout = %v, want LayoutTree", s.Layout())
	}
	if s.TabCount() != 1 {
		t.Errorf("initial TabCount = %d, want 1", s.TabCount())
	}
}

func TestDispatchLayoutCyclesThroughAllThree(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()

	if s.Layout() != LayoutTree {
		t.Fatalf("expected to start at LayoutTree, got %v", s.Layout())
	}
	if err := s.Dispatch(ctx, Action{Kind: ActionSetLayout, Layout: LayoutTree}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.Layout() != LayoutMiller {
		t.Errorf("after first toggle: got %v, want LayoutMiller", s.Layout())
	}

	if err := s.Dispatch(ctx, Action{Kind: ActionSetLayout, Layout: LayoutMiller}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.Layout() != LayoutTreemap {
		t.Errorf("after second toggle: got %v, want LayoutTreemap", s.Layout())
	}

	if err := s.Dispatch(ctx, Action{Kind: ActionSetLayout, Layout: LayoutTreemap}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.Layout() != LayoutTree {
		t.Errorf("after third toggle: got %v, want back to LayoutTree", s.Layout())
	}
}

func TestDispatchSetLayoutExplicit(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()

	if err := s.Dispatch(ctx, Action{Kind: ActionSetLayout, Layout: LayoutTreemap}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.Layout() != LayoutTreemap {
		t.Errorf("got %v, want LayoutTreemap (explicit, not current, layout is not a toggle)", s.Layout())
	}
}

func TestNavigateAndBack(t *testing.T) {
	s := newTestSession()

	if err := s.Navigate("/root/sub"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if s.ActiveTab().ViewRoot != "/root/sub" {
		t.Errorf("ViewRoot after Navigate = %q, want /root/sub", s.ActiveTab().ViewRoot)
	}

	if !s.NavigateBack() {
		t.Fatal("NavigateBack returned false, expected history to pop")
	}
	if s.ActiveTab().ViewRoot != "/root" {
		t.Errorf("ViewRoot after NavigateBack = %q, want /root", s.ActiveTab().ViewRoot)
	}

	if !s.NavigateForward() {
		t.Fatal("NavigateForward returned false, expected forward history")
	}
	if s.ActiveTab().ViewRoot != "/root/sub" {
		t.Errorf("ViewRoot after NavigateForward = %q, want /root/sub", s.ActiveTab().ViewRoot)
	}
}

func TestNavigateBackWithEmptyHistoryIsNoop(t *testing.T) {
	s := newTestSession()
	if s.NavigateBack() {
		t.Error("NavigateBack on fresh session should return false")
	}
}

func TestGoToRootFromSubdir(t *testing.T) {
	s := newTestSession()
	if err := s.Navigate("/root/sub"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if err := s.GoToRoot(); err != nil {
		t.Fatalf("GoToRoot: %v", err)
	}
	if s.ActiveTab().ViewRoot != "/root" {
		t.Errorf("ViewRoot after GoToRoot = %q, want /root", s.ActiveTab().ViewRoot)
	}
}

func TestDispatchQuitSetsModeQuit(t *testing.T) {
	s := newTestSession()
	if err := s.Dispatch(context.Background(), Action{Kind: ActionQuit}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.Mode() != ModeQuit {
		t.Errorf("Mode after ActionQuit = %v, want ModeQuit", s.Mode())
	}
}

func TestDispatchShowHelpAndCancel(t *testing.T) {
	s := newTestSession()
	if err := s.Dispatch(context.Background(), Action{Kind: ActionShowHelp}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.Mode() != ModeHelp {
		t.Errorf("Mode after ActionShowHelp = %v, want ModeHelp", s.Mode())
	}
	s.CancelPendingMode()
	if s.Mode() != ModeNormal {
		t.Errorf("Mode after CancelPendingMode = %v, want ModeNormal", s.Mode())
	}
}

func TestTabManagement(t *testing.T) {
	s := newTestSession()
	if s.TabCount() != 1 {
		t.Fatalf("expected 1 tab, got %d", s.TabCount())
	}

	s.OpenTab("/root/sub")
	if s.TabCount() != 2 {
		t.Fatalf("expected 2 tabs after OpenTab, got %d", s.TabCount())
	}
	if s.ActiveTabIndex() != 1 {
		t.Errorf("OpenTab should activate the new tab, ActiveTabIndex = %d", s.ActiveTabIndex())
	}

	s.PrevTab()
	if s.ActiveTabIndex() != 0 {
		t.Errorf("PrevTab: ActiveTabIndex = %d, want 0", s.ActiveTabIndex())
	}

	s.NextTab()
	if s.ActiveTabIndex() != 1 {
		t.Errorf("NextTab: ActiveTabIndex = %d, want 1", s.ActiveTabIndex())
	}

	if !s.CloseTab() {
		t.Fatal("CloseTab should succeed with 2 tabs open")
	}
	if s.TabCount() != 1 {
		t.Errorf("expected 1 tab after CloseTab, got %d", s.TabCount())
	}
	if s.CloseTab() {
		t.Error("CloseTab on the last remaining tab should fail")
	}
}

func TestDispatchSetThemeToggle(t *testing.T) {
	s := newTestSession()
	if s.Theme() != ThemeDark {
		t.Fatalf("expected initial ThemeDark, got %v", s.Theme())
	}
	if err := s.Dispatch(context.Background(), Action{Kind: ActionSetTheme, Theme: ThemeDark}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.Theme() != ThemeLight {
		t.Errorf("toggling ThemeDark should give ThemeLight, got %v", s.Theme())
	}
}

func TestDispatchSetSort(t *testing.T) {
	s := newTestSession()
	if err := s.Dispatch(context.Background(), Action{Kind: ActionSetSort, Sort: SortNameAsc}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if s.Sort() != model.SortNameAsc {
		t.Errorf("Sort() = %v, want SortNameAsc", s.Sort())
	}
}
