package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-erp/meridian-erp/internal/currency"
)

// RepositoryPort defines the count/sum queries behind the dashboard.
type RepositoryPort interface {
	CountProducts(ctx context.Context) (int64, error)
	CountSuppliers(ctx context.Context) (int64, error)
	CountPurchases(ctx context.Context) (int64, error)
	MonthlySalesIncome(ctx context.Context, from, to time.Time) (float64, error)
	ListDeductions(ctx context.Context) ([]Deduction, error)
}

// Service assembles dashboard stats.
type Service struct {
	repo  RepositoryPort
	cache *Cache
	now   func() time.Time
}

// NewService wires the dashboard to its data source. cache may be nil.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Stats returns the landing-view figures, cached per calendar month.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	month := s.now().Format("2006-01")
	key, err := s.cache.BuildKey(ctx, month)
	if err != nil {
		return s.load(ctx)
	}
	return s.cache.FetchStats(ctx, key, s.load)
}

// load runs the independent count/sum queries concurrently and reduces them
// into one payload.
func (s *Service) load(ctx context.Context) (Stats, error) {
	var stats Stats
	from, to := monthBounds(s.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountProducts(gctx)
		stats.ProductsCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountSuppliers(gctx)
		stats.SuppliersCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountPurchases(gctx)
		stats.PurchasesCount = n
		return err
	})
	g.Go(func() error {
		income, err := s.repo.MonthlySalesIncome(gctx, from, to)
		stats.MonthlyIncome = income
		return err
	})
	g.Go(func() error {
		deductions, err := s.repo.ListDeductions(gctx)
		if err != nil {
			return err
		}
		stats.DeductionsCount = int64(len(deductions))
		for _, d := range deductions {
			stats.TotalDeductions += currency.Normalize(d.Amount, d.Rate)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// monthBounds returns the inclusive first and last instants of t's calendar
// month.
func monthBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}
