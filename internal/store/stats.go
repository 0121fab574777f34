package store

import (
	"context"
	"fmt"
)

// Stats reports row counts per entity for health and status output.
type Stats struct {
	Recipes     int
	Collections int
	Follows     int
	Expenses    int
}

// Stats returns row counts for every entity.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	counts := []struct {
		table string
		dest  *int
	}{
		{"recipes", &stats.Recipes},
		{"collections", &stats.Collections},
		{"follows", &stats.Follows},
		{"expenses", &stats.Expenses},
	}
	for _, count := range counts {
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+count.table).Scan(count.dest); err != nil {
			return nil, fmt.Errorf("count %s: %w", count.table, err)
		}
	}
	return stats, nil
}
