package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskbridge/internal/shared"
)

// TodoistTasks lists active Todoist tasks.
func (r *Runner) TodoistTasks(ctx context.Context, cmd *cli.Command) error {
	if r.todoist == nil {
		return fmt.Errorf("%w: todoist api_token not configured", shared.ErrMissingCredentials)
	}

	items, err := r.todoist.ListTasks(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Todoist Tasks (%d)", len(items)))
	for i, t := range items {
		line := fmt.Sprintf("%d. [p%d] %s", i+1, t.Priority, t.Content)
		if t.Due != nil {
			if t.Due.Datetime != "" {
				line += fmt.Sprintf(" (due %s)", t.Due.Datetime)
			} else if t.Due.Date != "" {
				line += fmt.Sprintf(" (due %s)", t.Due.Date)
			}
		}
		r.writePlain("%s\n", line)
	}

	return nil
}

// TodoistProjects lists Todoist projects.
func (r *Runner) TodoistProjects(ctx context.Context, cmd *cli.Command) error {
	if r.todoist == nil {
		return fmt.Errorf("%w: todoist api_token not configured", shared.ErrMissingCredentials)
	}

	projects, err := r.todoist.ListProjects(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(projects, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Todoist Projects (%d)", len(projects)))
	for i, p := range projects {
		r.writePlain("%d. %s (%s)\n", i+1, p.Name, p.ID)
	}

	return nil
}
