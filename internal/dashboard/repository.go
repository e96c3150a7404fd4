package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed retrieval for dashboard figures.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CountProducts returns the catalogue size.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM products")
}

// CountSuppliers returns the supplier count.
func (r *Repository) CountSuppliers(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM suppliers")
}

// CountPurchases returns the all-time purchase document count.
func (r *Repository) CountPurchases(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM purchases")
}

// MonthlySalesIncome sums payments collected on sales dated inside the
// window. The join is on the sale date, not the payment date: income counts
// toward the month the sale was made in.
func (r *Repository) MonthlySalesIncome(ctx context.Context, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.amount * p.rate), 0)
		FROM sale_payments p
		JOIN sales s ON s.id = p.document_id
		WHERE s.date >= $1 AND s.date <= $2`

	var income float64
	err := r.pool.QueryRow(ctx, query, from, to).Scan(&income)
	return income, err
}

// ListDeductions returns every deduction row; the service normalizes and
// sums them.
func (r *Repository) ListDeductions(ctx context.Context) ([]Deduction, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, amount, rate FROM deductions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []Deduction
	for rows.Next() {
		var d Deduction
		if err := rows.Scan(&d.ID, &d.Amount, &d.Rate); err != nil {
			return nil, err
		}
		deductions = append(deductions, d)
	}
	return deductions, rows.Err()
}

func (r *Repository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, query).Scan(&n)
	return n, err
}
