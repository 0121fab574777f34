package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"golang.org/x/sys/unix"

	"ladle/internal/config"
	"ladle/internal/logging"
	"ladle/internal/notifications"
	"ladle/internal/recipe"
	"ladle/internal/store"
)

// snapshotVersion is bumped whenever the archive layout changes shape.
const snapshotVersion = 1

const (
	archivePrefix     = "ladle-backup-"
	archiveSuffix     = ".json"
	archiveTimeLayout = "20060102-150405"
)

// Snapshot is the persisted archive payload. It carries every entity the
// store knows about so a single file restores the whole database.
type Snapshot struct {
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	Recipes     []RecipeEntry     `json:"recipes"`
	Collections []CollectionEntry `json:"collections"`
	Follows     []FollowEntry     `json:"follows"`
	Expenses    []ExpenseEntry    `json:"expenses"`
	Settings    map[string]string `json:"settings"`
}

// RecipeEntry is one stored recipe plus its denormalized listing columns.
type RecipeEntry struct {
	ID        string             `json:"id"`
	VideoID   string             `json:"video_id"`
	Title     string             `json:"title"`
	Channel   string             `json:"channel,omitempty"`
	Record    recipe.VideoRecipe `json:"record"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CollectionEntry records a collection and the identifiers of its members.
type CollectionEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	RecipeIDs   []string  `json:"recipe_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FollowEntry records one followed channel and its poll marker.
type FollowEntry struct {
	ID            string     `json:"id"`
	ChannelID     string     `json:"channel_id"`
	ChannelName   string     `json:"channel_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
}

// ExpenseEntry records one ingredient purchase.
type ExpenseEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category,omitempty"`
	Note      string    `json:"note,omitempty"`
	SpentOn   string    `json:"spent_on"`
	CreatedAt time.Time `json:"created_at"`
}

// Archive describes one on-disk backup file, newest first in listings.
type Archive struct {
	Name       string
	Path       string
	SizeBytes  int64
	ModifiedAt time.Time
}

// Result summarizes one completed backup run.
type Result struct {
	ArchivePath string
	Recipes     int
	SizeBytes   int64
	Pruned      []string
	RemoteKey   string
}

// Uploader mirrors a finished archive to remote storage.
type Uploader interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
}

// statfsFunc allows tests to stub filesystem stats.
type statfsFunc func(path string) (total uint64, free uint64, err error)

// Options carries optional collaborators for NewService.
type Options struct {
	// Notifier receives the backup-completed event. Defaults to the
	// config-driven notification service.
	Notifier notifications.Service
	// Uploader mirrors archives offsite. Nil disables uploads.
	Uploader Uploader
	Logger   *slog.Logger
}

// Service produces, prunes, and optionally uploads store snapshots.
type Service struct {
	store    *store.Store
	cfg      *config.Config
	notifier notifications.Service
	uploader Uploader
	logger   *slog.Logger
	statfs   statfsFunc
}

// NewService builds a backup service over the given store and config.
func NewService(st *store.Store, cfg *config.Config, opts Options) *Service {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Service{
		store:    st,
		cfg:      cfg,
		notifier: notifier,
		uploader: opts.Uploader,
		logger:   logging.NewComponentLogger(opts.Logger, "backup"),
		statfs:   realStatfs,
	}
}

// Run performs one full backup: snapshot the store, write the archive,
// prune old archives, and mirror to S3 when an uploader is configured.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	dir := strings.TrimSpace(s.cfg.Paths.BackupDir)
	if dir == "" {
		return nil, errors.New("backup directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	if err := s.checkFreeSpace(dir); err != nil {
		return nil, err
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	name := archivePrefix + snap.CreatedAt.Format(archiveTimeLayout) + archiveSuffix
	path := filepath.Join(dir, name)
	if err := writeAtomic(path, payload); err != nil {
		return nil, err
	}

	result := &Result{
		ArchivePath: path,
		Recipes:     len(snap.Recipes),
		SizeBytes:   int64(len(payload)),
	}

	pruned, err := s.prune(ctx, dir)
	if err != nil {
		return nil, err
	}
	result.Pruned = pruned

	if s.uploader != nil {
		key := s.remoteKey(name)
		if err := s.uploader.Put(ctx, key, bytes.NewReader(payload), "application/json"); err != nil {
			return nil, fmt.Errorf("upload archive %s: %w", key, err)
		}
		result.RemoteKey = key
	}

	s.logger.InfoContext(ctx, "backup archive written",
		logging.String("archive", path),
		logging.Int("recipes", result.Recipes),
		logging.Int64("size_bytes", result.SizeBytes),
	)
	s.notify(ctx, result)
	return result, nil
}

// Snapshot collects every persisted entity into an archive payload.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	recipes, err := s.store.ListRecipes(ctx, store.ListRecipesOptions{})
	if err != nil {
		return nil, fmt.Errorf("snapshot recipes: %w", err)
	}
	collections, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot collections: %w", err)
	}
	follows, err := s.store.ListFollows(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot follows: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("snapshot expenses: %w", err)
	}
	settings, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot settings: %w", err)
	}
	if settings == nil {
		settings = map[string]string{}
	}

	snap := &Snapshot{
		Version:     snapshotVersion,
		CreatedAt:   time.Now().UTC(),
		Recipes:     make([]RecipeEntry, 0, len(recipes)),
		Collections: make([]CollectionEntry, 0, len(collections)),
		Follows:     make([]FollowEntry, 0, len(follows)),
		Expenses:    make([]ExpenseEntry, 0, len(expenses)),
		Settings:    settings,
	}

	for _, rec := range recipes {
		snap.Recipes = append(snap.Recipes, RecipeEntry{
			ID:        rec.ID,
			VideoID:   rec.VideoID,
			Title:     rec.Title,
			Channel:   rec.Channel,
			Record:    rec.Record,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	for _, col := range collections {
		members, err := s.store.CollectionRecipes(ctx, col.ID)
		if err != nil {
			return nil, fmt.Errorf("snapshot collection %s: %w", col.ID, err)
		}
		ids := make([]string, 0, len(members))
		for _, member := range members {
			ids = append(ids, member.ID)
		}
		snap.Collections = append(snap.Collections, CollectionEntry{
			ID:          col.ID,
			Name:        col.Name,
			Description: col.Description,
			RecipeIDs:   ids,
			CreatedAt:   col.CreatedAt,
			UpdatedAt:   col.UpdatedAt,
		})
	}
	for _, fol := range follows {
		snap.Follows = append(snap.Follows, FollowEntry{
			ID:            fol.ID,
			ChannelID:     fol.ChannelID,
			ChannelName:   fol.ChannelName,
			CreatedAt:     fol.CreatedAt,
			LastCheckedAt: fol.LastCheckedAt,
		})
	}
	for _, exp := range expenses {
		snap.Expenses = append(snap.Expenses, ExpenseEntry{
			ID:        exp.ID,
			Title:     exp.Title,
			Amount:    exp.Amount,
			Category:  exp.Category,
			Note:      exp.Note,
			SpentOn:   exp.SpentOn,
			CreatedAt: exp.CreatedAt,
		})
	}
	return snap, nil
}

// Archives lists on-disk backup files newest first.
func (s *Service) Archives() ([]Archive, error) {
	dir := strings.TrimSpace(s.cfg.Paths.BackupDir)
	if dir == "" {
		return nil, nil
	}
	names, err := archiveNames(dir)
	if err != nil {
		return nil, err
	}

	archives := make([]Archive, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		path := filepath.Join(dir, names[i])
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("inspect archive %s: %w", names[i], err)
		}
		archives = append(archives, Archive{
			Name:       names[i],
			Path:       path,
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	return archives, nil
}

// prune removes the oldest archives until the retention count is satisfied.
// Archive names embed their creation time, so lexical order is age order.
func (s *Service) prune(ctx context.Context, dir string) ([]string, error) {
	retention := s.cfg.Backup.RetentionCount
	if retention <= 0 {
		return nil, nil
	}
	names, err := archiveNames(dir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for len(names) > retention {
		oldest := names[0]
		if err := os.Remove(filepath.Join(dir, oldest)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("prune archive %s: %w", oldest, err)
		}
		s.logger.InfoContext(ctx, "pruned backup archive", logging.String("archive", oldest))
		removed = append(removed, oldest)
		names = names[1:]
	}
	return removed, nil
}

func (s *Service) checkFreeSpace(dir string) error {
	min := s.cfg.Backup.MinFreeMiB
	if min <= 0 {
		return nil
	}
	_, free, err := s.statfs(dir)
	if err != nil {
		return fmt.Errorf("statfs %s: %w", dir, err)
	}
	need := uint64(min) * 1024 * 1024
	if free < need {
		return fmt.Errorf("%s has %d MiB free, need at least %d MiB", dir, free/(1024*1024), min)
	}
	return nil
}

func (s *Service) remoteKey(name string) string {
	prefix := strings.Trim(strings.TrimSpace(s.cfg.Backup.S3Prefix), "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func (s *Service) notify(ctx context.Context, result *Result) {
	payload := notifications.Payload{
		"archive": filepath.Base(result.ArchivePath),
		"recipes": strconv.Itoa(result.Recipes),
	}
	if err := s.notifier.Publish(ctx, notifications.EventBackupCompleted, payload); err != nil {
		s.logger.WarnContext(ctx, "backup notification failed", logging.Error(err))
	}
}

func archiveNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, archivePrefix) && strings.HasSuffix(name, archiveSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// writeAtomic stages the payload next to the target and renames it into
// place so readers never observe a partial archive.
func writeAtomic(path string, payload []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, payload, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func realStatfs(path string) (uint64, uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return total, free, nil
}
