package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const followColumns = "id, channel_id, channel_name, created_at, last_checked_at"

func scanFollow(scanner interface{ Scan(dest ...any) error }) (*Follow, error) {
	var (
		id          string
		channelID   string
		channelName sql.NullString
		createdRaw  sql.NullString
		checkedRaw  sql.NullString
	)

	if err := scanner.Scan(&id, &channelID, &channelName, &createdRaw, &checkedRaw); err != nil {
		return nil, err
	}

	follow := &Follow{
		ID:          id,
		ChannelID:   channelID,
		ChannelName: channelName.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		follow.CreatedAt = created
	}
	if checkedRaw.Valid {
		if checked, err := parseTimeString(checkedRaw.String); err == nil {
			follow.LastCheckedAt = &checked
		}
	}
	return follow, nil
}

// CreateFollow subscribes to a channel. Following an already-followed channel
// refreshes its display name instead of erroring.
func (s *Store) CreateFollow(ctx context.Context, channelID, channelName string) (*Follow, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, errors.New("channel id is empty")
	}

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO follows (id, channel_id, channel_name, created_at) VALUES (?, ?, ?, ?)
         ON CONFLICT(channel_id) DO UPDATE SET channel_name = excluded.channel_name`,
		uuid.NewString(),
		channelID,
		nullableString(strings.TrimSpace(channelName)),
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("insert follow: %w", err)
	}

	return s.GetFollowByChannelID(ctx, channelID)
}

// GetFollow fetches a follow by row identifier.
func (s *Store) GetFollow(ctx context.Context, id string) (*Follow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+followColumns+` FROM follows WHERE id = ?`, id)
	follow, err := scanFollow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get follow: %w", err)
	}
	return follow, nil
}

// GetFollowByChannelID fetches a follow by its channel.
func (s *Store) GetFollowByChannelID(ctx context.Context, channelID string) (*Follow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+followColumns+` FROM follows WHERE channel_id = ?`, channelID)
	follow, err := scanFollow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get follow by channel id: %w", err)
	}
	return follow, nil
}

// ListFollows returns all followed channels ordered by creation time.
func (s *Store) ListFollows(ctx context.Context) ([]*Follow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+followColumns+` FROM follows ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	var follows []*Follow
	for rows.Next() {
		follow, err := scanFollow(rows)
		if err != nil {
			return nil, err
		}
		follows = append(follows, follow)
	}
	return follows, rows.Err()
}

// TouchFollow records when a channel's feed was last polled.
func (s *Store) TouchFollow(ctx context.Context, id string, checkedAt time.Time) error {
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE follows SET last_checked_at = ? WHERE id = ?`,
		checkedAt.UTC().Format(time.RFC3339Nano),
		id,
	); err != nil {
		return fmt.Errorf("touch follow: %w", err)
	}
	return nil
}

// DeleteFollow unsubscribes from a channel.
func (s *Store) DeleteFollow(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM follows WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
