package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Sync.IntervalMinutes != 5 {
			t.Errorf("expected interval_minutes 5, got %d", config.Sync.IntervalMinutes)
		}

		if config.Sync.DefaultProject != "Inbox" {
			t.Errorf("expected default project Inbox, got %s", config.Sync.DefaultProject)
		}

		if config.Credentials.Todoist.RedirectURI != "http://localhost:8080/callback" {
			t.Errorf("unexpected redirect URI %s", config.Credentials.Todoist.RedirectURI)
		}
	})

	t.Run("SyncInterval", func(t *testing.T) {
		cfg := SyncConfig{IntervalMinutes: 2}
		if cfg.Interval() != 2*time.Minute {
			t.Errorf("expected 2m interval, got %v", cfg.Interval())
		}

		cfg = SyncConfig{}
		if cfg.Interval() != 5*time.Minute {
			t.Errorf("expected default 5m interval, got %v", cfg.Interval())
		}
	})

	t.Run("ServerAddr", func(t *testing.T) {
		cfg := ServerConfig{Host: "127.0.0.1", Port: 9000}
		if cfg.Addr() != "127.0.0.1:9000" {
			t.Errorf("unexpected addr %s", cfg.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Sync.DefaultProject != defaultConfig.Sync.DefaultProject {
			t.Errorf("created config default project doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "0.0.0.0"
port = 8080

[sync]
interval_minutes = 1
default_project = "Work"

[credentials.todoist]
api_token = "test_token"
client_secret = "test_secret"

[credentials.notion]
api_key = "test_api_key"
database_id = "db123"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.Todoist.APIToken != "test_token" {
			t.Errorf("expected todoist api_token test_token, got %s", config.Credentials.Todoist.APIToken)
		}

		if config.Credentials.Notion.DatabaseID != "db123" {
			t.Errorf("expected notion database_id db123, got %s", config.Credentials.Notion.DatabaseID)
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		config := DefaultConfig()
		config.Credentials.Todoist.APIToken = "saved_token"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}

		if loaded.Credentials.Todoist.APIToken != "saved_token" {
			t.Errorf("expected saved_token, got %s", loaded.Credentials.Todoist.APIToken)
		}
	})
}
