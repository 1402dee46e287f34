package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskbridge/internal/shared"
)

// NotionPages lists pages in the configured database.
func (r *Runner) NotionPages(ctx context.Context, cmd *cli.Command) error {
	if r.notion == nil {
		return fmt.Errorf("%w: notion api_key and database_id not configured", shared.ErrMissingCredentials)
	}

	pages, err := r.notion.Query(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("pending") {
		filtered := pages[:0]
		for _, p := range pages {
			if p.Properties.TaskID.Text() == "" {
				filtered = append(filtered, p)
			}
		}
		pages = filtered
	}

	if cmd.Bool("json") {
		return r.writeJSON(pages, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Notion Pages (%d)", len(pages)))
	for i, p := range pages {
		line := fmt.Sprintf("%d. %s", i+1, p.Properties.TaskName.Text())
		if taskID := p.Properties.TaskID.Text(); taskID != "" {
			line += fmt.Sprintf(" → task %s", taskID)
		} else {
			line += " (pending)"
		}
		r.writePlain("%s\n", line)
	}

	return nil
}
