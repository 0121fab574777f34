package preflight

import (
	"context"

	"ladle/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Data and log directories (always checked)
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	// Backup directory (when snapshots are enabled)
	if cfg.Backup.Enabled {
		results = append(results, CheckDirectoryAccess("Backup directory", cfg.Paths.BackupDir))
	}

	// YouTube Data API key (extraction cannot run without one)
	results = append(results, CheckYouTubeKey(cfg.YouTube.APIKey))

	// ntfy endpoint
	if cfg.Notifications.NtfyTopic != "" {
		results = append(results, CheckNtfy(ctx, cfg.Notifications.NtfyTopic))
	}

	return results
}
