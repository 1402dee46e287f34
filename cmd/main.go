package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskbridge/internal/services"
	"github.com/desertthunder/taskbridge/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	if config.Logging.Level != "" {
		if level, err := log.ParseLevel(config.Logging.Level); err == nil {
			shared.SetLogLevel(logger, level)
		}
	}

	var todoist services.TodoistAPI
	var notion services.NotionAPI

	if config.Credentials.Todoist.APIToken != "" {
		todoist = services.NewTodoistClient(config.Credentials.Todoist.APIToken, "", nil)
	}
	if config.Credentials.Notion.APIKey != "" && config.Credentials.Notion.DatabaseID != "" {
		notion = services.NewNotionClient(config.Credentials.Notion.APIKey, config.Credentials.Notion.DatabaseID, "", nil)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Todoist:    todoist,
		Notion:     notion,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "taskbridge",
		Usage:    "Sync tasks between Todoist & Notion",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
