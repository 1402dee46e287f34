package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/taskbridge/internal/shared"
)

// Setup creates a config file from the embedded template.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
		return r.writePlain("Config file already exists at %s\n", configPath)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Config file created at %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Fill in credentials.notion with your integration key and database ID\n")
	r.writePlain("2. Set credentials.todoist.api_token, or run 'taskbridge auth todoist' after adding client_id/client_secret\n")
	r.writePlain("3. Run 'taskbridge sync run' to test the connection\n")

	return nil
}
