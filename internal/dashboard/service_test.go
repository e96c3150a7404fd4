package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	products   int64
	suppliers  int64
	purchases  int64
	income     float64
	deductions []Deduction

	loads    atomic.Int64
	lastFrom time.Time
	lastTo   time.Time
}

func (m *memoryRepo) CountProducts(context.Context) (int64, error)  { return m.products, nil }
func (m *memoryRepo) CountSuppliers(context.Context) (int64, error) { return m.suppliers, nil }
func (m *memoryRepo) CountPurchases(context.Context) (int64, error) { return m.purchases, nil }

func (m *memoryRepo) MonthlySalesIncome(_ context.Context, from, to time.Time) (float64, error) {
	m.loads.Add(1)
	m.lastFrom, m.lastTo = from, to
	return m.income, nil
}

func (m *memoryRepo) ListDeductions(context.Context) ([]Deduction, error) {
	return m.deductions, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func TestStatsWithoutCache(t *testing.T) {
	repo := &memoryRepo{
		products:  12,
		suppliers: 4,
		purchases: 30,
		income:    4500,
		deductions: []Deduction{
			{ID: 1, Amount: 500, Rate: 1},
			{ID: 2, Amount: 5, Rate: 80},
		},
	}
	svc := NewService(repo, nil)
	svc.WithNow(fixedNow)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, Stats{
		ProductsCount:   12,
		SuppliersCount:  4,
		PurchasesCount:  30,
		MonthlyIncome:   4500,
		DeductionsCount: 2,
		TotalDeductions: 900, // 500*1 + 5*80
	}, stats)
}

func TestStatsMonthlyIncomeWindow(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil)
	svc.WithNow(fixedNow)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	require.Equal(t, time.Month(3), repo.lastTo.Month())
	require.True(t, repo.lastTo.Before(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStatsCachesPerMonth(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &memoryRepo{income: 4500}
	svc := NewService(repo, NewCache(client, time.Minute))
	svc.WithNow(fixedNow)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	second, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int64(1), repo.loads.Load())
}

func TestStatsCacheBumpForcesReload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &memoryRepo{income: 4500}
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, cache)
	svc.WithNow(fixedNow)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.NoError(t, cache.Bump(context.Background()))

	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), repo.loads.Load())
}

func TestStatsSurvivesRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	repo := &memoryRepo{income: 4500}
	svc := NewService(repo, NewCache(client, time.Minute))
	svc.WithNow(fixedNow)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4500.0, stats.MonthlyIncome)
}
