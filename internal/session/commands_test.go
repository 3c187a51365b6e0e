package session

import (
	"testing"

	"github.com/gravityfile/gravityfile/internal/model"
)

func TestParseCommandBasics(t *testing.T) {
	cases := []struct {
		in   string
		want Action
	}{
		{"", Action{Kind: ActionNone}},
		{"   ", Action{Kind: ActionNone}},
		{"q", Action{Kind: ActionQuit}},
		{"quit", Action{Kind: ActionQuit}},
		{"r", Action{Kind: ActionRefresh}},
		{"back", Action{Kind: ActionNavigateBack}},
		{"..", Action{Kind: ActionNavigateBack}},
		{"root", Action{Kind: ActionGoToRoot}},
		{"help", Action{Kind: ActionShowHelp}},
		{"dups", Action{Kind: ActionSwitchView, View: ViewDuplicates}},
		{"age", Action{Kind: ActionSwitchView, View: ViewAge}},
		{"clear", Action{Kind: ActionClearMarks}},
		{"undo", Action{Kind: ActionUndo}},
		{"bogus-command", Action{Kind: ActionNone}},
	}
	for _, c := range cases {
		got := ParseCommand(c.in)
		if got.Kind != c.want.Kind || got.View != c.want.View {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseCommandCdWithAndWithoutArg(t *testing.T) {
	got := ParseCommand("cd /some/path")
	if got.Kind != ActionNavigateTo || got.Arg != "/some/path" {
		t.Errorf("cd with arg: got %+v", got)
	}

	got = ParseCommand("cd")
	if got.Kind != ActionGoToRoot {
		t.Errorf("cd without arg: got %+v, want ActionGoToRoot", got)
	}
}

func TestParseCommandLayout(t *testing.T) {
	cases := []struct {
		in   string
		want Layout
	}{
		{"layout tree", LayoutTree},
		{"layout miller", LayoutMiller},
		{"layout columns", LayoutMiller},
		{"layout treemap", LayoutTreemap},
		{"view treemap", LayoutTreemap},
		{"treemap", LayoutTreemap},
		{"miller", LayoutMiller},
	}
	for _, c := range cases {
		got := ParseCommand(c.in)
		if got.Kind != ActionSetLayout || got.Layout != c.want {
			t.Errorf("ParseCommand(%q) = %+v, want Layout %v", c.in, got, c.want)
		}
	}
}

func TestParseCommandLayoutToggleHasZeroLayout(t *testing.T) {
	got := ParseCommand("layout toggle")
	if got.Kind != ActionSetLayout || got.Layout != LayoutTree {
		t.Errorf("layout toggle: got %+v, want zero-value Layout (Tree)", got)
	}
	got = ParseCommand("layout")
	if got.Kind != ActionSetLayout || got.Layout != LayoutTree {
		t.Errorf("bare layout: got %+v, want zero-value Layout (Tree)", got)
	}
}

func TestParseCommandLayoutUnknownArgIsNone(t *testing.T) {
	got := ParseCommand("layout bogus")
	if got.Kind != ActionNone {
		t.Errorf("layout bogus: got %+v, want ActionNone", got)
	}
}

func TestParseCommandRenameCreateTakeArgs(t *testing.T) {
	got := ParseCommand("rename new name.txt")
	if got.Kind != ActionRename || got.Arg != "new name.txt" {
		t.Errorf("rename: got %+v", got)
	}

	got = ParseCommand("mkdir")
	if got.Kind != ActionCreateDirectory || got.Arg != "" {
		t.Errorf("mkdir without arg: got %+v", got)
	}

	got = ParseCommand("take foo")
	if got.Kind != ActionTake || got.Arg != "foo" {
		t.Errorf("take foo: got %+v", got)
	}
}

func TestToModelSortOrderCycle(t *testing.T) {
	got := ToModelSortOrder(SortCycle, model.SortSizeDesc)
	want := model.SortOrder((model.SortSizeDesc + 1) % 8)
	if got != want {
		t.Errorf("cycle from SortSizeDesc: got %v, want %v", got, want)
	}
}

func TestToModelSortOrderReverse(t *testing.T) {
	cases := []struct {
		in   model.SortOrder
		want model.SortOrder
	}{
		{model.SortSizeDesc, model.SortSizeAsc},
		{model.SortSizeAsc, model.SortSizeDesc},
		{model.SortNameAsc, model.SortNameDesc},
		{model.SortCountDesc, model.SortCountAsc},
	}
	for _, c := range cases {
		got := ToModelSortOrder(SortReverse, c.in)
		if got != c.want {
			t.Errorf("reverse(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToModelSortOrderExplicit(t *testing.T) {
	cases := []struct {
		in   SortCommand
		want model.SortOrder
	}{
		{SortSizeDesc, model.SortSizeDesc},
		{SortSizeAsc, model.SortSizeAsc},
		{SortNameAsc, model.SortNameAsc},
		{SortNameDesc, model.SortNameDesc},
		{SortDateDesc, model.SortModifiedDesc},
		{SortDateAsc, model.SortModifiedAsc},
		{SortCountDesc, model.SortCountDesc},
		{SortCountAsc, model.SortCountAsc},
	}
	for _, c := range cases {
		got := ToModelSortOrder(c.in, model.SortSizeDesc)
		if got != c.want {
			t.Errorf("ToModelSortOrder(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
