// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles config file creation.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a configuration file from the template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "todoist",
				Usage:  "Authenticate with Todoist using OAuth2",
				Action: r.TodoistAuth,
			},
		},
	}
}

// todoistCommand handles Todoist operations
func todoistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "todoist",
		Aliases: []string{"td"},
		Usage:   "Todoist task operations",
		Commands: []*cli.Command{
			{
				Name:  "tasks",
				Usage: "List active Todoist tasks",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.TodoistTasks,
			},
			{
				Name:  "projects",
				Usage: "List Todoist projects",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.TodoistProjects,
			},
		},
	}
}

// notionCommand handles Notion operations
func notionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "notion",
		Aliases: []string{"nt"},
		Usage:   "Notion database operations",
		Commands: []*cli.Command{
			{
				Name:  "pages",
				Usage: "List pages in the configured database",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "pending",
						Usage: "Only show pages not yet mirrored to Todoist",
					},
				},
				Action: r.NotionPages,
			},
		},
	}
}

// syncCommand handles sync operations
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Run sync operations",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run one Notion → Todoist polling pass",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Report format (text, csv, markdown, json)",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the report to a file instead of stdout",
					},
				},
				Action: r.SyncRun,
			},
			{
				Name:  "push",
				Usage: "Mirror a single Todoist task into Notion",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Todoist task ID to mirror",
						Required: true,
					},
				},
				Action: r.SyncPush,
			},
		},
	}
}

// serveCommand starts the webhook server and polling daemon.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the webhook server and polling daemon",
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive syncing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for task syncing",
		Action:  r.TUI,
	}
}
