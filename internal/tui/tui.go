package tui

import (
	"context"
	"io"

	"todo-cli/internal/store"
	"todo-cli/internal/tasklist"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Options struct {
	Store store.Store
	// List must already be loaded.
	List   *tasklist.List
	Logger *log.Logger
	// Glyphs is the configured glyph set (unicode|ascii); TODO_TUI_GLYPHS wins.
	Glyphs string
}

// Run starts the interactive task list and blocks until the user quits.
func Run(ctx context.Context, opt Options) error {
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opt.Glyphs)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watch, err := opt.Store.Watch(ctx)
	if err != nil {
		logger.Warn("not watching for external changes", "err", err)
		watch = nil
	}

	m := newAppModel(opt.Store, opt.List, logger, watch)
	if st, err := opt.Store.LoadTUIState(); err != nil {
		logger.Warn("ignoring tui state", "err", err)
	} else {
		m.restore(st)
	}

	final, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	if err != nil {
		return err
	}
	if am, ok := final.(appModel); ok {
		if err := opt.Store.SaveTUIState(am.tuiState()); err != nil {
			logger.Warn("failed to save tui state", "err", err)
		}
	}
	return nil
}
