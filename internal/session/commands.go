package session

import (
	"strings"

	"github.com/gravityfile/gravityfile/internal/model"
)

// SortCommand names one of the `sort` command's targets (§4.G "Command
// language").
type SortCommand uint8

const (
	SortSizeDesc SortCommand = iota
	SortSizeAsc
	SortNameAsc
	SortNameDesc
	SortDateDesc
	SortDateAsc
	SortCountDesc
	SortCountAsc
	SortCycle
	SortReverse
)

// ActionKind tags which Action a parsed command produced.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionRefresh
	ActionNavigateTo
	ActionGoToRoot
	ActionNavigateBack
	ActionShowHelp
	ActionSwitchView
	ActionClearMarks
	ActionToggleDetails
	ActionSetTheme
	ActionSetLayout
	ActionSetSort
	ActionYank
	ActionCut
	ActionPaste
	ActionDelete
	ActionRename
	ActionCreateFile
	ActionCreateDirectory
	ActionTake
	ActionUndo
)

// Action is the result of parsing one command-language string.
type Action struct {
	Kind  ActionKind
	Arg   string // NavigateTo path, Rename/CreateFile/CreateDirectory/Take name (empty if omitted)
	View  View
	Theme Theme
	Layout Layout
	Sort  SortCommand
}

// ParseCommand parses one command-palette input string into an
// Action, per §4.G "Command language". Unrecognized input yields
// ActionNone, matching the reference implementation's parse_command.
func ParseCommand(cmd string) Action {
	parts := strings.Fields(strings.TrimSpace(cmd))
	if len(parts) == 0 {
		return Action{Kind: ActionNone}
	}

	rest := func() string { return strings.Join(parts[1:], " ") }
	hasArg := len(parts) > 1

	switch parts[0] {
	case "q", "quit", "exit":
		return Action{Kind: ActionQuit}

	case "r", "refresh", "rescan":
		return Action{Kind: ActionRefresh}

	case "cd":
		if hasArg {
			return Action{Kind: ActionNavigateTo, Arg: rest()}
		}
		return Action{Kind: ActionGoToRoot}

	case "root", "top":
		return Action{Kind: ActionGoToRoot}

	case "back", "up", "..":
		return Action{Kind: ActionNavigateBack}

	case "help", "?":
		return Action{Kind: ActionShowHelp}

	case "explorer", "e", "tree":
		return Action{Kind: ActionSwitchView, View: ViewExplorer}
	case "duplicates", "dups", "d":
		return Action{Kind: ActionSwitchView, View: ViewDuplicates}
	case "age", "a":
		return Action{Kind: ActionSwitchView, View: ViewAge}
	case "errors", "err":
		return Action{Kind: ActionSwitchView, View: ViewErrors}

	case "clear", "unmark":
		return Action{Kind: ActionClearMarks}

	case "details", "info", "i":
		return Action{Kind: ActionToggleDetails}

	case "theme", "t":
		if hasArg {
			switch parts[1] {
			case "dark":
				return Action{Kind: ActionSetTheme, Theme: ThemeDark}
			case "light":
				return Action{Kind: ActionSetTheme, Theme: ThemeLight}
			case "toggle":
				return Action{Kind: ActionSetTheme}
			}
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionSetTheme}
	case "dark":
		return Action{Kind: ActionSetTheme, Theme: ThemeDark}
	case "light":
		return Action{Kind: ActionSetTheme, Theme: ThemeLight}

	case "layout", "view":
		if hasArg {
			switch parts[1] {
			case "tree":
				return Action{Kind: ActionSetLayout, Layout: LayoutTree}
			case "miller", "columns":
				return Action{Kind: ActionSetLayout, Layout: LayoutMiller}
			case "treemap":
				return Action{Kind: ActionSetLayout, Layout: LayoutTreemap}
			case "toggle":
				return Action{Kind: ActionSetLayout}
			}
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionSetLayout}
	case "miller", "columns":
		return Action{Kind: ActionSetLayout, Layout: LayoutMiller}
	case "treemap":
		return Action{Kind: ActionSetLayout, Layout: LayoutTreemap}

	case "sort", "s":
		if hasArg {
			return Action{Kind: ActionSetSort, Sort: parseSortArg(parts[1])}
		}
		return Action{Kind: ActionSetSort, Sort: SortCycle}

	case "yank", "y", "copy", "cp":
		return Action{Kind: ActionYank}
	case "cut", "x":
		return Action{Kind: ActionCut}
	case "paste", "p":
		return Action{Kind: ActionPaste}
	case "delete", "del", "rm":
		return Action{Kind: ActionDelete}

	case "rename", "mv":
		if hasArg {
			return Action{Kind: ActionRename, Arg: rest()}
		}
		return Action{Kind: ActionRename}

	case "touch", "new", "create":
		if hasArg {
			return Action{Kind: ActionCreateFile, Arg: rest()}
		}
		return Action{Kind: ActionCreateFile}

	case "mkdir", "md":
		if hasArg {
			return Action{Kind: ActionCreateDirectory, Arg: rest()}
		}
		return Action{Kind: ActionCreateDirectory}

	case "take":
		if hasArg {
			return Action{Kind: ActionTake, Arg: rest()}
		}
		return Action{Kind: ActionTake}

	case "undo", "u":
		return Action{Kind: ActionUndo}

	default:
		return Action{Kind: ActionNone}
	}
}

func parseSortArg(arg string) SortCommand {
	switch strings.ToLower(arg) {
	case "size", "sz", "size-", "sz-", "size-desc":
		return SortSizeDesc
	case "size+", "sz+", "size-asc":
		return SortSizeAsc
	case "name", "nm", "name+", "nm+", "name-asc":
		return SortNameAsc
	case "name-", "nm-", "name-desc":
		return SortNameDesc
	case "date", "dt", "modified", "mod", "date-", "dt-", "date-desc":
		return SortDateDesc
	case "date+", "dt+", "date-asc":
		return SortDateAsc
	case "count", "ct", "children", "count-", "ct-", "count-desc":
		return SortCountDesc
	case "count+", "ct+", "count-asc":
		return SortCountAsc
	case "reverse", "rev":
		return SortReverse
	default:
		return SortCycle
	}
}

// ToModelSortOrder maps a SortCommand onto the Tree Model's SortOrder,
// given the tree's current order (needed for Cycle/Reverse).
func ToModelSortOrder(cmd SortCommand, current model.SortOrder) model.SortOrder {
	switch cmd {
	case SortSizeDesc:
		return model.SortSizeDesc
	case SortSizeAsc:
		return model.SortSizeAsc
	case SortNameAsc:
		return model.SortNameAsc
	case SortNameDesc:
		return model.SortNameDesc
	case SortDateDesc:
		return model.SortModifiedDesc
	case SortDateAsc:
		return model.SortModifiedAsc
	case SortCountDesc:
		return model.SortCountDesc
	case SortCountAsc:
		return model.SortCountAsc
	case SortReverse:
		return reverseOrder(current)
	default: // Cycle
		return (current + 1) % 8
	}
}

func reverseOrder(o model.SortOrder) model.SortOrder {
	switch o {
	case model.SortSizeDesc:
		return model.SortSizeAsc
	case model.SortSizeAsc:
		return model.SortSizeDesc
	case model.SortNameAsc:
		return model.SortNameDesc
	case model.SortNameDesc:
		return model.SortNameAsc
	case model.SortModifiedDesc:
		return model.SortModifiedAsc
	case model.SortModifiedAsc:
		return model.SortModifiedDesc
	case model.SortCountDesc:
		return model.SortCountAsc
	case model.SortCountAsc:
		return model.SortCountDesc
	default:
		return o
	}
}
