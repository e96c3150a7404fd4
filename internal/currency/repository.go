package currency

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed retrieval for the currency table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all currencies with their latest rate snapshots.
func (r *Repository) List(ctx context.Context) ([]Currency, error) {
	query := `
		SELECT id, code, name, is_base, rate
		FROM currencies
		ORDER BY is_base DESC, code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []Currency
	for rows.Next() {
		var c Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.IsBase, &c.Rate); err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

// LoadConverter fetches the currency table and builds a converter from it.
func (r *Repository) LoadConverter(ctx context.Context) (*Converter, error) {
	currencies, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewConverter(currencies)
}
