package reports

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-erp/meridian-erp/internal/stock"
)

// expiryHorizon bounds the "expiring soon" section of the products report.
const expiryHorizon = 90 * 24 * time.Hour

// ProductsReport values every purchase batch bought inside the window and
// flags batches whose expiry date falls within the horizon after the window
// end.
func (s *Service) ProductsReport(ctx context.Context, rng DateRange) (*ReportData, error) {
	var (
		products []Product
		batches  []stock.Batch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repo.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		batches, err = s.repo.ListStockBatches(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories := make(map[int64]string, len(products))
	for _, p := range products {
		categories[p.ID] = p.CategoryName
	}

	inRange := batches[:0:0]
	for _, b := range batches {
		if rng.Contains(b.PurchaseDate) {
			inRange = append(inRange, b)
		}
	}

	rows := make([][]Cell, 0, len(inRange))
	for _, b := range inRange {
		v := stock.Valuate(b)
		rows = append(rows, []Cell{
			Text(b.ProductName),
			Text(categories[b.ProductID]),
			Text(b.BatchNumber),
			Text(formatDate(b.PurchaseDate)),
			Quantity(b.RemainingQty),
			Text(b.UnitName),
			Number(b.CostPrice),
			Number(v.StockValue),
			Number(v.PotentialRevenue),
			Number(v.PotentialProfit),
			Percent(v.MarginPercent),
		})
	}

	horizon := rng.To
	if horizon.IsZero() {
		horizon = time.Now()
	}
	horizon = horizon.Add(expiryHorizon)

	expiring := make([][]Cell, 0)
	for _, b := range inRange {
		if b.RemainingQty > 0 && b.ExpiresWithin(horizon) {
			expiring = append(expiring, []Cell{
				Text(b.ProductName),
				Text(b.BatchNumber),
				Text(formatDate(*b.ExpiryDate)),
				Quantity(b.RemainingQty),
				Text(b.UnitName),
				Number(stock.Valuate(b).StockValue),
			})
		}
	}

	totals := stock.Aggregate(inRange)
	return &ReportData{
		Title: "Products Report",
		Type:  TypeProducts,
		Range: rng,
		Summary: map[string]Cell{
			"totalBatches":     Count(len(inRange)),
			"stockValue":       Number(totals.StockValue),
			"potentialRevenue": Number(totals.PotentialRevenue),
			"potentialProfit":  Number(totals.PotentialProfit),
			"marginPercent":    Percent(totals.MarginPercent),
		},
		Sections: []Section{
			{
				Kind:  SectionTable,
				Label: "Batches",
				Columns: []string{
					"Product", "Category", "Batch", "Purchased", "Remaining",
					"Unit", "Cost Price", "Stock Value", "Potential Revenue",
					"Potential Profit", "Margin",
				},
				Rows: rows,
			},
			{
				Kind:    SectionTable,
				Label:   "Expiring Soon",
				Columns: []string{"Product", "Batch", "Expires", "Remaining", "Unit", "Stock Value"},
				Rows:    expiring,
			},
			{
				Kind:  SectionSummary,
				Label: "Valuation",
				Items: []SummaryItem{
					{Label: "Stock Value", Value: Number(totals.StockValue)},
					{Label: "Potential Revenue", Value: Number(totals.PotentialRevenue)},
					{Label: "Potential Profit", Value: Number(totals.PotentialProfit)},
					{Label: "Margin", Value: Percent(totals.MarginPercent)},
				},
			},
		},
	}, nil
}
