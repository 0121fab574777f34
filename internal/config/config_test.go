package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ladle/internal/config"
)

func TestLoadDefaultConfigUsesEnvYouTubeKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "ladle")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7560" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.YouTube.APIKey != "test-key" {
		t.Fatalf("expected YouTube key from env, got %q", cfg.YouTube.APIKey)
	}
	if len(cfg.Extraction.PreferredLanguages) != 2 || cfg.Extraction.PreferredLanguages[0] != "ja" {
		t.Fatalf("unexpected language defaults: %v", cfg.Extraction.PreferredLanguages)
	}
	if cfg.Extraction.MinConfidence != 0.5 || cfg.Extraction.MergeThresholdSeconds != 10 {
		t.Fatalf("unexpected extraction defaults: %+v", cfg.Extraction)
	}
	if !cfg.Backup.Enabled || cfg.Backup.RetentionCount != 10 {
		t.Fatalf("unexpected backup defaults: %+v", cfg.Backup)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if cfg.DatabasePath() != filepath.Join(cfg.Paths.DataDir, "ladle.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "ladle.toml")

	type payload struct {
		YouTube struct {
			APIKey string `toml:"api_key"`
		} `toml:"youtube"`
		Extraction struct {
			PreferredLanguages []string `toml:"preferred_languages"`
			MinConfidence      float64  `toml:"min_confidence"`
		} `toml:"extraction"`
		Paths struct {
			APIToken string `toml:"api_token"`
		} `toml:"paths"`
	}
	custom := payload{}
	custom.YouTube.APIKey = "abc123"
	custom.Extraction.PreferredLanguages = []string{" ja ", "", "en"}
	custom.Extraction.MinConfidence = 0.6
	custom.Paths.APIToken = " secret "

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q %v", resolved, exists)
	}
	if cfg.YouTube.APIKey != "abc123" {
		t.Fatalf("unexpected api key: %q", cfg.YouTube.APIKey)
	}
	if len(cfg.Extraction.PreferredLanguages) != 2 || cfg.Extraction.PreferredLanguages[0] != "ja" {
		t.Fatalf("expected blank languages stripped, got %v", cfg.Extraction.PreferredLanguages)
	}
	if cfg.Extraction.MinConfidence != 0.6 {
		t.Fatalf("unexpected min confidence: %v", cfg.Extraction.MinConfidence)
	}
	if cfg.Paths.APIToken != "secret" {
		t.Fatalf("expected trimmed api token, got %q", cfg.Paths.APIToken)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("HOME", t.TempDir())

	_, _, _, err := config.Load("")
	if err == nil || !strings.Contains(err.Error(), "youtube.api_key") {
		t.Fatalf("expected missing api key error, got %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	tempDir := t.TempDir()

	cases := []struct {
		name string
		body string
		want string
	}{
		{"confidence", "[extraction]\nmin_confidence = 2.0\n", "min_confidence"},
		{"format", "[logging]\nformat = \"fancy\"\n", "logging.format"},
		{"level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tc.name+".toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
		})
	}
}

func TestBackupS3RequiresRegion(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	t.Setenv("AWS_REGION", "")
	path := filepath.Join(t.TempDir(), "ladle.toml")
	if err := os.WriteFile(path, []byte("[backup]\ns3_bucket = \"my-bucket\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "s3_region") {
		t.Fatalf("expected s3_region error, got %v", err)
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	path := filepath.Join(t.TempDir(), "config", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Extraction.MergeThresholdSeconds != 10 {
		t.Fatalf("unexpected sample values: %+v", cfg.Extraction)
	}
}
