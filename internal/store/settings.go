package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SettingPreferredLanguages holds the transcript language preference as a
// comma-separated list of BCP 47 tags.
const SettingPreferredLanguages = "preferred_languages"

// SetSetting stores or replaces a key/value pair.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("setting key is empty")
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// GetSetting returns a setting value and whether the key exists.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting: %w", err)
	}
	return value, true, nil
}

// ListSettings returns every stored key/value pair.
func (s *Store) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// DeleteSetting removes a key, reporting whether it existed.
func (s *Store) DeleteSetting(ctx context.Context, key string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete setting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// PreferredLanguages returns the stored transcript language preference, or
// fallback when the setting is absent or blank.
func (s *Store) PreferredLanguages(ctx context.Context, fallback []string) ([]string, error) {
	value, ok, err := s.GetSetting(ctx, SettingPreferredLanguages)
	if err != nil {
		return nil, err
	}
	if !ok {
		return fallback, nil
	}
	var languages []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	if len(languages) == 0 {
		return fallback, nil
	}
	return languages, nil
}

// SetPreferredLanguages stores the transcript language preference.
func (s *Store) SetPreferredLanguages(ctx context.Context, languages []string) error {
	cleaned := make([]string, 0, len(languages))
	for _, lang := range languages {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return errors.New("languages list is empty")
	}
	return s.SetSetting(ctx, SettingPreferredLanguages, strings.Join(cleaned, ","))
}
