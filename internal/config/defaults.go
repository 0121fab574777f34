package config

const (
	defaultDataDir               = "~/.local/share/ladle"
	defaultLogDir                = "~/.local/share/ladle/logs"
	defaultBackupDir             = "~/.local/share/ladle/backups"
	defaultAPIBind               = "127.0.0.1:7560"
	defaultTimedtextBaseURL      = "https://video.google.com/timedtext"
	defaultMinConfidence         = 0.5
	defaultMergeThresholdSeconds = 10
	defaultNotifyRequestTimeout  = 10
	defaultFeedTimeout           = 15
	defaultFeedMaxVideos         = 10
	defaultFeedCheckInterval     = 60
	defaultBackupRetention       = 10
	defaultBackupMinFreeMiB      = 64
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

func defaultPreferredLanguages() []string {
	return []string{"ja", "en"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			BackupDir: defaultBackupDir,
			APIBind:   defaultAPIBind,
		},
		YouTube: YouTube{
			TimedtextBaseURL: defaultTimedtextBaseURL,
		},
		Extraction: Extraction{
			PreferredLanguages:    defaultPreferredLanguages(),
			MinConfidence:         defaultMinConfidence,
			MergeThresholdSeconds: defaultMergeThresholdSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Extraction:     true,
			Follows:        true,
			Backup:         true,
			Errors:         true,
		},
		Follows: Follows{
			FeedTimeout:          defaultFeedTimeout,
			MaxVideos:            defaultFeedMaxVideos,
			CheckIntervalMinutes: defaultFeedCheckInterval,
		},
		Backup: Backup{
			Enabled:        true,
			RetentionCount: defaultBackupRetention,
			MinFreeMiB:     defaultBackupMinFreeMiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
