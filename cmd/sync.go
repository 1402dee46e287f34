package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskbridge/internal/formatter"
	"github.com/desertthunder/taskbridge/internal/shared"
	"github.com/desertthunder/taskbridge/internal/tasks"
)

// SyncRun runs one Notion → Todoist polling pass and prints the report.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	outputPath := cmd.String("output")

	if r.bridge == nil {
		return fmt.Errorf("%w: both todoist and notion credentials must be configured", shared.ErrMissingCredentials)
	}

	r.logger.Info("starting sync pass")
	r.writePlain("Starting sync pass...\n\n")

	// Progress goroutine keeps the pass itself non-blocking
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchPages:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ProcessPage:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	report, err := r.bridge.SyncAll(ctx, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if outputPath != "" {
		path, err := formatter.WriteReport(report, format, outputPath)
		if err != nil {
			return err
		}
		return r.writePlain("\nReport written to %s\n", path)
	}

	data, err := formatter.Format(report, format)
	if err != nil {
		return err
	}

	r.writePlain("\n")
	return r.writePlain("%s", string(data))
}

// SyncPush mirrors a single Todoist task into Notion by id.
func (r *Runner) SyncPush(ctx context.Context, cmd *cli.Command) error {
	taskID := cmd.String("id")

	if r.bridge == nil || r.todoist == nil {
		return fmt.Errorf("%w: both todoist and notion credentials must be configured", shared.ErrMissingCredentials)
	}

	r.logger.Info("pushing task", "id", taskID)

	task, err := r.todoist.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	res, err := r.bridge.SyncEvent(ctx, *task)
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s page %s for task %s\n", res.Action, res.PageID, taskID)
}
