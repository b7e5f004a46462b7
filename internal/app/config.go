package app

import (
	"os"
	"path/filepath"

	"vitae/internal/docstore"
)

// Config collects everything the app reads from the environment.
// Defaults give a zero-config local setup: SQLite under the user data
// dir, no AI gateway, hourly backups.
type Config struct {
	DataDir        string
	Docstore       docstore.Config
	AIBaseURL      string
	BackupSchedule string
}

// LoadConfig builds the runtime configuration from environment
// variables, falling back to local defaults.
func LoadConfig() Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := envOr("VITAE_DATA_DIR", filepath.Join(homeDir, ".local", "share", "vitae"))

	return Config{
		DataDir: dataDir,
		Docstore: docstore.Config{
			Driver: os.Getenv("VITAE_DB_DRIVER"),
			Path:   filepath.Join(dataDir, "vitae.db"),
			DSN:    os.Getenv("VITAE_DB_DSN"),
			DBName: envOr("VITAE_DB_NAME", "vitae"),
		},
		AIBaseURL:      os.Getenv("VITAE_AI_URL"),
		BackupSchedule: os.Getenv("VITAE_BACKUP_SCHEDULE"),
	}
}

// InboxDir is where dropped resume source files are picked up.
func (c Config) InboxDir() string {
	return filepath.Join(c.DataDir, "inbox")
}

// BackupDir holds periodic document snapshots.
func (c Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
