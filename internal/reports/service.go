package reports

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-erp/meridian-erp/internal/documents"
	"github.com/meridian-erp/meridian-erp/internal/stock"
)

// ErrUnknownReportType rejects a Build request for a type the aggregator
// does not produce.
var ErrUnknownReportType = errors.New("reports: unknown report type")

// RepositoryPort defines the read-only data access the aggregator consumes.
// All methods fetch full windows in one call; child-row methods are keyed by
// the parent id set so a report costs a fixed number of round trips.
type RepositoryPort interface {
	ListDocuments(ctx context.Context, kind documents.Kind, rng DateRange, partyID int64) ([]documents.Document, error)
	ListPaymentsByDocumentIDs(ctx context.Context, kind documents.Kind, ids []int64) (map[int64][]documents.Payment, error)
	ListItemsByDocumentIDs(ctx context.Context, kind documents.Kind, ids []int64) (map[int64][]documents.Item, error)
	ListExpenses(ctx context.Context, rng DateRange) ([]Expense, error)
	ListAccountTransactions(ctx context.Context, rng DateRange, accountID int64) ([]AccountTransaction, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ListStockBatches(ctx context.Context) ([]stock.Batch, error)
}

// Service builds reports. It holds no state between invocations; each call
// reads a fresh snapshot and reduces it into a private ReportData.
type Service struct {
	repo RepositoryPort
}

// NewService wires the aggregator to its data source.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Build dispatches a report request to the matching builder.
func (s *Service) Build(ctx context.Context, req Request) (*ReportData, error) {
	switch req.Type {
	case TypeSales:
		return s.SalesReport(ctx, req.Range, req.Options)
	case TypePurchases:
		return s.PurchasesReport(ctx, req.Range, req.Options)
	case TypeExpenses:
		return s.ExpensesReport(ctx, req.Range)
	case TypeAccounts:
		return s.AccountsReport(ctx, req.Range, req.Options)
	case TypeProducts:
		return s.ProductsReport(ctx, req.Range)
	case TypeReceivables:
		return s.ReceivablesReport(ctx, req.Range.To)
	case TypePayables:
		return s.PayablesReport(ctx, req.Range.To)
	case TypeProfit:
		return s.ProfitReport(ctx, req.Range, req.Options)
	default:
		return nil, ErrUnknownReportType
	}
}

// documentSet bundles a document window with its batched child rows.
type documentSet struct {
	docs     []documents.Document
	payments map[int64][]documents.Payment
	items    map[int64][]documents.Item
}

// fetchDocumentSet retrieves documents for the window, then both child-row
// sets in one batched follow-up each. The child fetches are independent of
// each other and run concurrently.
func (s *Service) fetchDocumentSet(ctx context.Context, kind documents.Kind, rng DateRange, partyID int64) (documentSet, error) {
	docs, err := s.repo.ListDocuments(ctx, kind, rng, partyID)
	if err != nil {
		return documentSet{}, err
	}

	set := documentSet{docs: docs}
	if len(docs) == 0 {
		return set, nil
	}

	ids := make([]int64, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		payments, err := s.repo.ListPaymentsByDocumentIDs(gctx, kind, ids)
		if err != nil {
			return err
		}
		set.payments = payments
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.ListItemsByDocumentIDs(gctx, kind, ids)
		if err != nil {
			return err
		}
		set.items = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return documentSet{}, err
	}
	return set, nil
}
