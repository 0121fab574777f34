package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	BackupDir string `toml:"backup_dir"`
	APIBind   string `toml:"api_bind"`
	APIToken  string `toml:"api_token"`
}

// YouTube contains configuration for the YouTube Data API and the timedtext
// caption endpoint.
type YouTube struct {
	APIKey           string `toml:"api_key"`
	TimedtextBaseURL string `toml:"timedtext_base_url"`
}

// Extraction contains tuning for the recipe extraction pipeline.
type Extraction struct {
	PreferredLanguages    []string `toml:"preferred_languages"`
	MinConfidence         float64  `toml:"min_confidence"`
	MergeThresholdSeconds int      `toml:"merge_threshold_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Extraction     bool   `toml:"extraction"`
	Follows        bool   `toml:"follows"`
	Backup         bool   `toml:"backup"`
	Errors         bool   `toml:"errors"`
}

// Follows contains configuration for followed-channel feed polling.
type Follows struct {
	FeedTimeout          int `toml:"feed_timeout"`
	MaxVideos            int `toml:"max_videos"`
	CheckIntervalMinutes int `toml:"check_interval_minutes"`
}

// Backup contains configuration for database snapshots.
type Backup struct {
	Enabled        bool   `toml:"enabled"`
	RetentionCount int    `toml:"retention_count"`
	MinFreeMiB     int    `toml:"min_free_mib"`
	S3Bucket       string `toml:"s3_bucket"`
	S3Prefix       string `toml:"s3_prefix"`
	S3Region       string `toml:"s3_region"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ladle.
//
// Configuration sections by subsystem:
//   - Paths: data/log/backup directories and API bind address
//   - YouTube: Data API key and caption endpoint
//   - Extraction: language preference and classifier thresholds
//   - Notifications: ntfy push notification settings
//   - Follows: followed-channel feed polling
//   - Backup: snapshot retention and optional S3 upload
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	YouTube       YouTube       `toml:"youtube"`
	Extraction    Extraction    `toml:"extraction"`
	Notifications Notifications `toml:"notifications"`
	Follows       Follows       `toml:"follows"`
	Backup        Backup        `toml:"backup"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ladle/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ladle.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for server operation.
// BackupDir is created on a best-effort basis so the server can run when
// backup storage is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.BackupDir) != "" {
		// Best-effort to avoid failing config load when storage is offline.
		_ = os.MkdirAll(c.Paths.BackupDir, 0o755)
	}
	return nil
}

// DatabasePath returns the SQLite database location under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "ladle.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
