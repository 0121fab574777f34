package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeExtraction()
	c.normalizeNotifications()
	c.normalizeFollows()
	c.normalizeBackup()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = defaultBackupDir
	}
	if c.Paths.BackupDir, err = expandPath(c.Paths.BackupDir); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeYouTube() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		}
	}
	c.YouTube.TimedtextBaseURL = strings.TrimSpace(c.YouTube.TimedtextBaseURL)
	if c.YouTube.TimedtextBaseURL == "" {
		c.YouTube.TimedtextBaseURL = defaultTimedtextBaseURL
	}
}

func (c *Config) normalizeExtraction() {
	languages := make([]string, 0, len(c.Extraction.PreferredLanguages))
	for _, lang := range c.Extraction.PreferredLanguages {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	if len(languages) == 0 {
		languages = defaultPreferredLanguages()
	}
	c.Extraction.PreferredLanguages = languages

	if c.Extraction.MinConfidence == 0 {
		c.Extraction.MinConfidence = defaultMinConfidence
	}
	if c.Extraction.MergeThresholdSeconds == 0 {
		c.Extraction.MergeThresholdSeconds = defaultMergeThresholdSeconds
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeFollows() {
	if c.Follows.FeedTimeout <= 0 {
		c.Follows.FeedTimeout = defaultFeedTimeout
	}
	if c.Follows.MaxVideos <= 0 {
		c.Follows.MaxVideos = defaultFeedMaxVideos
	}
	if c.Follows.CheckIntervalMinutes <= 0 {
		c.Follows.CheckIntervalMinutes = defaultFeedCheckInterval
	}
}

func (c *Config) normalizeBackup() {
	if c.Backup.RetentionCount <= 0 {
		c.Backup.RetentionCount = defaultBackupRetention
	}
	if c.Backup.MinFreeMiB <= 0 {
		c.Backup.MinFreeMiB = defaultBackupMinFreeMiB
	}
	c.Backup.S3Bucket = strings.TrimSpace(c.Backup.S3Bucket)
	c.Backup.S3Prefix = strings.Trim(strings.TrimSpace(c.Backup.S3Prefix), "/")
	c.Backup.S3Region = strings.TrimSpace(c.Backup.S3Region)
	if c.Backup.S3Region == "" {
		if value, ok := os.LookupEnv("AWS_REGION"); ok {
			c.Backup.S3Region = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
