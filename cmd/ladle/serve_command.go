package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"log/slog"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"ladle/internal/backup"
	"ladle/internal/config"
	"ladle/internal/follows"
	"ladle/internal/logging"
	"ladle/internal/notifications"
	"ladle/internal/preflight"
	"ladle/internal/server"
	"ladle/internal/store"
)

// backupInterval paces scheduled snapshots while serving. The retention
// count in the config bounds how many of them stick around.
const backupInterval = 24 * time.Hour

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP backend in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx)
		},
	}
}

func runServe(cmdCtx context.Context, ctx *commandContext) error {
	if ctx == nil {
		return errors.New("command context is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logPath := filepath.Join(cfg.Paths.LogDir, "ladle.log")
	logger, err := logging.NewWithFile(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	}, logPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// Preflight failures never abort startup; the affected routes degrade
	// and the log says why.
	for _, check := range preflight.RunAll(signalCtx, cfg) {
		if check.Passed {
			logger.Info("preflight check passed",
				logging.String("check", check.Name),
				logging.String("detail", check.Detail))
		} else {
			logger.Warn("preflight check failed",
				logging.String("check", check.Name),
				logging.String("detail", check.Detail))
		}
	}

	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "ladle.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another ladle serve instance is already running")
	}
	defer lock.Unlock()

	pidPath := filepath.Join(cfg.Paths.LogDir, "ladle.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open store", logging.Error(err))
		return err
	}
	defer st.Close()

	notifier := notifications.NewService(cfg)

	extractor, err := buildExtractor(signalCtx, cfg, st, logger)
	if err != nil {
		return fmt.Errorf("build extractor: %w", err)
	}
	feeds := follows.NewService(st, follows.Options{
		Timeout:   time.Duration(cfg.Follows.FeedTimeout) * time.Second,
		MaxVideos: cfg.Follows.MaxVideos,
		Notifier:  notifier,
		Logger:    logger,
	})

	srv, err := server.New(cfg, st, server.Options{
		Extractor: extractor,
		Feeds:     feeds,
		Notifier:  notifier,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	if err := srv.Start(signalCtx); err != nil {
		return err
	}
	defer srv.Stop()

	go runFollowChecks(signalCtx, cfg, feeds, logger)
	if cfg.Backup.Enabled {
		go runScheduledBackups(signalCtx, cfg, st, notifier, logger)
	}

	<-signalCtx.Done()
	logger.Info("ladle shutting down")
	return nil
}

// runFollowChecks polls followed channels for new uploads, once at startup
// and then on the configured interval.
func runFollowChecks(ctx context.Context, cfg *config.Config, feeds *follows.Service, logger *slog.Logger) {
	interval := time.Duration(cfg.Follows.CheckIntervalMinutes) * time.Minute
	if interval <= 0 {
		logger.Info("follow checks disabled")
		return
	}

	check := func() {
		updates, err := feeds.CheckNew(ctx)
		if err != nil {
			logger.Warn("follow check failed", logging.Error(err))
			return
		}
		for _, update := range updates {
			logger.Info("new videos on followed channel",
				logging.String("channel", update.ChannelName),
				logging.Int("videos", len(update.Videos)))
		}
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// runScheduledBackups snapshots the store daily. The first run happens
// right away so a freshly enabled backup config produces an archive.
func runScheduledBackups(ctx context.Context, cfg *config.Config, st *store.Store, notifier notifications.Service, logger *slog.Logger) {
	var uploader backup.Uploader
	if cfg.Backup.S3Bucket != "" {
		s3up, err := backup.NewS3Uploader(ctx, cfg.Backup.S3Bucket, cfg.Backup.S3Region)
		if err != nil {
			logger.Warn("s3 uploader unavailable, keeping backups local", logging.Error(err))
		} else {
			uploader = s3up
		}
	}
	svc := backup.NewService(st, cfg, backup.Options{
		Notifier: notifier,
		Uploader: uploader,
		Logger:   logger,
	})

	run := func() {
		if _, err := svc.Run(ctx); err != nil {
			logger.Error("scheduled backup failed", logging.Error(err))
		}
	}

	run()
	ticker := time.NewTicker(backupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
