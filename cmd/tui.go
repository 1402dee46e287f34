package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskbridge/internal/shared"
	"github.com/desertthunder/taskbridge/internal/ui"
)

// TUI launches the interactive terminal UI for task syncing.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.bridge == nil || r.notion == nil {
		return fmt.Errorf("%w: both todoist and notion credentials must be configured", shared.ErrMissingCredentials)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Logging.Path
	if logPath == "" {
		logPath = "./tmp/taskbridge-tui.log"
	}
	fileLogger := shared.NewFileLogger(logPath)
	r.SetLogger(fileLogger)
	r.bridge.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.notion, r.bridge)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
