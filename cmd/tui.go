package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harish2111/freshchat-migrations/internal/migrate"
	"github.com/harish2111/freshchat-migrations/internal/registry"
	"github.com/harish2111/freshchat-migrations/internal/shared"
	"github.com/harish2111/freshchat-migrations/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for the migration workflow.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: both tenants must be configured", shared.ErrServiceUnavailable)
	}

	rosterPath := r.rosterPath(cmd)
	registryPath := r.registryPath(cmd)

	roster, err := registry.ReadRoster(rosterPath)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/fcmigrate-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	onComplete := func(result *migrate.RunResult) error {
		r.recordRun(roster, rosterPath, registryPath, result, nil)
		_, err := r.persistRegistry(registryPath, result.Rows)
		return err
	}

	model := ui.NewModel(ctx, roster, r.engine, onComplete)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
