package reports

import (
	"context"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/documents"
)

// ReceivablesReport lists customers who still owe money as of a date.
func (s *Service) ReceivablesReport(ctx context.Context, asOf time.Time) (*ReportData, error) {
	return s.balanceReport(ctx, documents.KindSale, asOf, "Receivables Report", TypeReceivables, "Customer")
}

// PayablesReport lists suppliers the business still owes as of a date.
func (s *Service) PayablesReport(ctx context.Context, asOf time.Time) (*ReportData, error) {
	return s.balanceReport(ctx, documents.KindPurchase, asOf, "Payables Report", TypePayables, "Supplier")
}

// balanceReport builds an as-of outstanding-balance report. The lower date
// bound is deliberately unset: settled history before any cutoff still shifts
// today's balance. Parties whose total remaining is zero or negative are
// dropped entirely.
func (s *Service) balanceReport(ctx context.Context, kind documents.Kind, asOf time.Time, title string, typ Type, partyLabel string) (*ReportData, error) {
	rng := DateRange{To: asOf}
	set, err := s.fetchDocumentSet(ctx, kind, rng, 0)
	if err != nil {
		return nil, err
	}

	outstanding := documents.Outstanding(documents.PartyBalances(set.docs, set.payments))

	var totalInvoiced, totalPaid, totalRemaining float64
	rows := make([][]Cell, 0, len(outstanding))
	for _, pb := range outstanding {
		totalInvoiced += pb.Invoiced
		totalPaid += pb.Paid
		totalRemaining += pb.Remaining
		rows = append(rows, []Cell{
			Text(pb.PartyName),
			Count(len(pb.Documents)),
			Number(pb.Invoiced),
			Number(pb.Paid),
			Number(pb.Remaining),
		})
	}

	return &ReportData{
		Title: title,
		Type:  typ,
		Range: rng,
		Summary: map[string]Cell{
			"partyCount":     Count(len(outstanding)),
			"totalInvoiced":  Number(totalInvoiced),
			"totalPaid":      Number(totalPaid),
			"totalRemaining": Number(totalRemaining),
		},
		Sections: []Section{
			{
				Kind:    SectionTable,
				Label:   title,
				Columns: []string{partyLabel, "Documents", "Invoiced", "Paid", "Remaining"},
				Rows:    rows,
			},
			{
				Kind:  SectionSummary,
				Label: "Totals",
				Items: []SummaryItem{
					{Label: "Parties", Value: Count(len(outstanding))},
					{Label: "Total Remaining", Value: Number(totalRemaining)},
				},
			},
		},
	}, nil
}
