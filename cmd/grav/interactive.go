package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravityfile/gravityfile/internal/config"
	"github.com/gravityfile/gravityfile/internal/model"
	"github.com/gravityfile/gravityfile/internal/scanner"
	"github.com/gravityfile/gravityfile/internal/session"
	"github.com/gravityfile/gravityfile/internal/tui"
)

// undoLogCapacity bounds the Undo Log (§4.F "Max-entries configured at
// construction"); the spec leaves the number open, so this picks a
// generous-but-bounded depth for an interactive session.
const undoLogCapacity = 50

func runInteractive(cmd *cobra.Command, args []string) error {
	root := rootPath(args)
	ctx := context.Background()

	cfgManager := config.NewManager()
	if err := cfgManager.Load(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settings := cfgManager.Get()

	walker := scanner.NewWalker()

	tree, err := initialTree(ctx, walker, root, rootConfiguration.forceScan || settings.ScanOnStartup, settings.ShowHidden)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	sess := session.New(root, tree, walker, undoLogCapacity)
	if settings.Theme == "light" {
		_ = sess.Dispatch(ctx, session.Action{Kind: session.ActionSetTheme, Theme: session.ThemeLight})
	}
	if settings.DefaultLayout == "miller" {
		_ = sess.Dispatch(ctx, session.Action{Kind: session.ActionSetLayout, Layout: session.LayoutMiller})
	}

	app := tui.NewApp(sess)
	program := tea.NewProgram(app, tea.WithAltScreen())

	_, runErr := program.Run()
	cfgManager.Close()
	return runErr
}

func initialTree(ctx context.Context, sc scanner.Scanner, root string, fullScan, showHidden bool) (*model.Tree, error) {
	cfg := scanner.DefaultConfig(root)
	cfg.IncludeHidden = showHidden

	if fullScan {
		return sc.Scan(ctx, cfg)
	}
	return sc.QuickList(root)
}
