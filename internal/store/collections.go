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

func scanCollection(scanner interface{ Scan(dest ...any) error }) (*Collection, error) {
	var (
		id          string
		name        string
		description sql.NullString
		recipeCount int
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)

	if err := scanner.Scan(&id, &name, &description, &recipeCount, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	col := &Collection{
		ID:          id,
		Name:        name,
		Description: description.String,
		RecipeCount: recipeCount,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		col.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		col.UpdatedAt = updated
	}
	return col, nil
}

// CreateCollection inserts a new named collection. Names are unique.
func (s *Store) CreateCollection(ctx context.Context, name, description string) (*Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("collection name is empty")
	}

	id := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO collections (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id,
		name,
		nullableString(strings.TrimSpace(description)),
		timestamp,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert collection: %w", err)
	}

	return s.GetCollection(ctx, id)
}

// GetCollection fetches a collection with its member count.
func (s *Store) GetCollection(ctx context.Context, id string) (*Collection, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, name, description,
                (SELECT COUNT(1) FROM collection_recipes WHERE collection_id = collections.id),
                created_at, updated_at
         FROM collections WHERE id = ?`,
		id,
	)
	col, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

// ListCollections returns all collections ordered by name.
func (s *Store) ListCollections(ctx context.Context) ([]*Collection, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT c.id, c.name, c.description, COUNT(cr.recipe_id), c.created_at, c.updated_at
         FROM collections c
         LEFT JOIN collection_recipes cr ON cr.collection_id = c.id
         GROUP BY c.id
         ORDER BY c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []*Collection
	for rows.Next() {
		col, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, col)
	}
	return collections, rows.Err()
}

// UpdateCollection replaces a collection's name and description.
func (s *Store) UpdateCollection(ctx context.Context, id, name, description string) (*Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("collection name is empty")
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE collections SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name,
		nullableString(strings.TrimSpace(description)),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	); err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}
	return s.GetCollection(ctx, id)
}

// DeleteCollection removes a collection and its memberships.
func (s *Store) DeleteCollection(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete collection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// AddRecipeToCollection records membership. Adding an existing member is a
// no-op. The caller is expected to have verified both identifiers exist.
func (s *Store) AddRecipeToCollection(ctx context.Context, collectionID, recipeID string) error {
	if err := s.execWithoutResultRetry(
		ctx,
		`INSERT OR IGNORE INTO collection_recipes (collection_id, recipe_id, added_at) VALUES (?, ?, ?)`,
		collectionID,
		recipeID,
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("add recipe to collection: %w", err)
	}
	return nil
}

// RemoveRecipeFromCollection drops a membership, reporting whether one existed.
func (s *Store) RemoveRecipeFromCollection(ctx context.Context, collectionID, recipeID string) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`DELETE FROM collection_recipes WHERE collection_id = ? AND recipe_id = ?`,
		collectionID,
		recipeID,
	)
	if err != nil {
		return false, fmt.Errorf("remove recipe from collection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// CollectionRecipes returns a collection's members in the order they were added.
func (s *Store) CollectionRecipes(ctx context.Context, collectionID string) ([]*Recipe, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT r.id, r.video_id, r.title, r.channel, r.record_json, r.created_at, r.updated_at
         FROM recipes r
         JOIN collection_recipes cr ON cr.recipe_id = r.id
         WHERE cr.collection_id = ?
         ORDER BY cr.added_at, r.id`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("collection recipes: %w", err)
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
