package cities

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource serves suggestions from a cities table, enabling
// server-managed or region-specific lists.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a PostgreSQL-backed suggestion source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Suggest implements Source.
func (s *PostgresSource) Suggest(ctx context.Context, query string) ([]string, error) {
	const q = `
		SELECT name
		FROM cities
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY rank, name
	`

	rows, err := s.pool.Query(ctx, q, query)
	if err != nil {
		return nil, fmt.Errorf("querying cities: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning city row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating city rows: %w", err)
	}

	return names, nil
}
