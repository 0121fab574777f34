package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/spf13/cobra"

	"ladle/internal/config"
	"ladle/internal/extraction"
	"ladle/internal/follows"
	"ladle/internal/logging"
	"ladle/internal/services/captions"
	"ladle/internal/services/youtube"
	"ladle/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// cliLogger writes to stderr so command output on stdout stays parseable.
func (c *commandContext) cliLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) withStore(fn func(st *store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// buildExtractor assembles the metadata and caption clients around the
// pipeline. Preferred languages come from the settings table when set,
// falling back to the config.
func buildExtractor(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) (*extraction.Extractor, error) {
	metadata, err := youtube.New(ctx, cfg.YouTube.APIKey)
	if err != nil {
		return nil, err
	}
	transcripts := captions.New(cfg.YouTube.TimedtextBaseURL)

	languages, err := st.PreferredLanguages(ctx, cfg.Extraction.PreferredLanguages)
	if err != nil {
		return nil, err
	}

	return extraction.New(metadata, transcripts, extraction.Options{
		Languages:      languages,
		MinConfidence:  cfg.Extraction.MinConfidence,
		MergeThreshold: cfg.Extraction.MergeThresholdSeconds,
		Logger:         logger,
	}), nil
}

func followsService(cfg *config.Config, st *store.Store, logger *slog.Logger) *follows.Service {
	return follows.NewService(st, follows.Options{
		Timeout:   time.Duration(cfg.Follows.FeedTimeout) * time.Second,
		MaxVideos: cfg.Follows.MaxVideos,
		Logger:    logger,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
