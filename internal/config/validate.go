package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateFollows(); err != nil {
		return err
	}
	if err := c.validateBackup(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateYouTube() error {
	if c.YouTube.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/ladle/config.toml"
		}
		return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'ladle config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.MinConfidence < 0 || c.Extraction.MinConfidence > 1 {
		return errors.New("extraction.min_confidence must be between 0 and 1")
	}
	if c.Extraction.MergeThresholdSeconds < 0 {
		return errors.New("extraction.merge_threshold_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateFollows() error {
	if c.Follows.FeedTimeout <= 0 {
		return errors.New("follows.feed_timeout must be positive")
	}
	if c.Follows.MaxVideos <= 0 {
		return errors.New("follows.max_videos must be positive")
	}
	if c.Follows.CheckIntervalMinutes <= 0 {
		return errors.New("follows.check_interval_minutes must be positive")
	}
	return nil
}

func (c *Config) validateBackup() error {
	if c.Backup.RetentionCount <= 0 {
		return errors.New("backup.retention_count must be positive")
	}
	if c.Backup.S3Bucket != "" && c.Backup.S3Region == "" {
		return errors.New("backup.s3_region must be set when backup.s3_bucket is configured (or export AWS_REGION)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
