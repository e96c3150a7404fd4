package reports

import (
	"context"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/documents"
)

// SalesReport lists sale documents in the window with their settled state.
func (s *Service) SalesReport(ctx context.Context, rng DateRange, opts Options) (*ReportData, error) {
	return s.documentReport(ctx, documents.KindSale, rng, opts, "Sales Report", TypeSales, "Customer")
}

// PurchasesReport lists purchase documents in the window with their settled
// state. Identical shape to the sales report with the party column renamed.
func (s *Service) PurchasesReport(ctx context.Context, rng DateRange, opts Options) (*ReportData, error) {
	return s.documentReport(ctx, documents.KindPurchase, rng, opts, "Purchases Report", TypePurchases, "Supplier")
}

func (s *Service) documentReport(ctx context.Context, kind documents.Kind, rng DateRange, opts Options, title string, typ Type, partyLabel string) (*ReportData, error) {
	set, err := s.fetchDocumentSet(ctx, kind, rng, opts.PartyID)
	if err != nil {
		return nil, err
	}

	var totalAmount, totalPaid, totalRemaining, totalQty float64
	rows := make([][]Cell, 0, len(set.docs))
	for _, doc := range set.docs {
		bal := documents.CalcBalance(doc, set.payments[doc.ID])
		items := set.items[doc.ID]

		var qty float64
		for _, it := range items {
			qty += it.Quantity
		}

		totalAmount += bal.TotalAmount
		totalPaid += bal.Paid
		totalRemaining += bal.Remaining
		totalQty += qty

		rows = append(rows, []Cell{
			Count(int(doc.ID)),
			Text(doc.PartyName),
			Text(formatDate(doc.Date)),
			Count(len(items)),
			Quantity(qty),
			Number(bal.TotalAmount),
			Number(bal.Paid),
			Number(bal.Remaining),
		})
	}

	return &ReportData{
		Title: title,
		Type:  typ,
		Range: rng,
		Summary: map[string]Cell{
			"totalCount":     Count(len(set.docs)),
			"totalQuantity":  Quantity(totalQty),
			"totalAmount":    Number(totalAmount),
			"totalPaid":      Number(totalPaid),
			"totalRemaining": Number(totalRemaining),
		},
		Sections: []Section{
			{
				Kind:    SectionTable,
				Label:   title,
				Columns: []string{"#", partyLabel, "Date", "Items", "Quantity", "Total", "Paid", "Remaining"},
				Rows:    rows,
			},
			{
				Kind:  SectionSummary,
				Label: "Totals",
				Items: []SummaryItem{
					{Label: "Documents", Value: Count(len(set.docs))},
					{Label: "Total Amount", Value: Number(totalAmount)},
					{Label: "Total Paid", Value: Number(totalPaid)},
					{Label: "Total Remaining", Value: Number(totalRemaining)},
				},
			},
		},
	}, nil
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}
