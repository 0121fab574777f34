package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ladle/internal/recipe"
)

const recipeColumns = "id, video_id, title, channel, record_json, created_at, updated_at"

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*Recipe, error) {
	var (
		id         string
		videoID    string
		title      string
		channel    sql.NullString
		recordJSON string
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(&id, &videoID, &title, &channel, &recordJSON, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	rec := &Recipe{
		ID:      id,
		VideoID: videoID,
		Title:   title,
		Channel: channel.String,
	}
	if err := json.Unmarshal([]byte(recordJSON), &rec.Record); err != nil {
		return nil, fmt.Errorf("decode recipe record: %w", err)
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		rec.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		rec.UpdatedAt = updated
	}
	return rec, nil
}

// SaveRecipe inserts an extraction result, replacing the stored record when
// the same video was extracted before. The row id and created_at survive
// re-extraction. Records that fail validation are never written.
func (s *Store) SaveRecipe(ctx context.Context, rec *recipe.VideoRecipe) (*Recipe, error) {
	if rec == nil {
		return nil, errors.New("recipe is nil")
	}
	if strings.TrimSpace(rec.VideoID) == "" {
		return nil, errors.New("recipe video id is empty")
	}
	if strings.TrimSpace(rec.Title) == "" {
		return nil, errors.New("recipe title is empty")
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}

	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal recipe record: %w", err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO recipes (id, video_id, title, channel, record_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(video_id) DO UPDATE SET
             title = excluded.title,
             channel = excluded.channel,
             record_json = excluded.record_json,
             updated_at = excluded.updated_at`,
		uuid.NewString(),
		rec.VideoID,
		rec.Title,
		nullableString(rec.Channel),
		string(recordJSON),
		timestamp,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("save recipe: %w", err)
	}

	return s.GetRecipeByVideoID(ctx, rec.VideoID)
}

// GetRecipe fetches a stored recipe by row identifier.
func (s *Store) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	rec, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

// GetRecipeByVideoID fetches a stored recipe by its source video.
func (s *Store) GetRecipeByVideoID(ctx context.Context, videoID string) (*Recipe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE video_id = ?`, videoID)
	rec, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe by video id: %w", err)
	}
	return rec, nil
}

// ListRecipes returns stored recipes, newest first, narrowed by the options.
func (s *Store) ListRecipes(ctx context.Context, opts ListRecipesOptions) ([]*Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes`
	var (
		clauses []string
		args    []any
	)
	if search := strings.TrimSpace(opts.Search); search != "" {
		pattern := "%" + search + "%"
		clauses = append(clauses, "(title LIKE ? OR channel LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if channel := strings.TrimSpace(opts.Channel); channel != "" {
		clauses = append(clauses, "channel = ?")
		args = append(args, channel)
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// DeleteRecipe removes a recipe by identifier. Collection memberships go with
// it through the foreign key cascade.
func (s *Store) DeleteRecipe(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete recipe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
