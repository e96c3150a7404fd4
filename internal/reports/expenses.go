package reports

import (
	"context"
	"sort"
)

// ExpensesReport lists expenses in the window and groups totals by type.
func (s *Service) ExpensesReport(ctx context.Context, rng DateRange) (*ReportData, error) {
	expenses, err := s.repo.ListExpenses(ctx, rng)
	if err != nil {
		return nil, err
	}

	var total float64
	byType := make(map[string]float64)
	rows := make([][]Cell, 0, len(expenses))
	for _, e := range expenses {
		t := e.Total()
		total += t
		byType[e.ExpenseType] += t
		rows = append(rows, []Cell{
			Text(e.ExpenseType),
			Text(e.AccountName),
			Text(formatDate(e.Date)),
			Number(e.Amount),
			Text(e.Currency),
			Number(e.Rate),
			Number(t),
		})
	}

	types := make([]string, 0, len(byType))
	for name := range byType {
		types = append(types, name)
	}
	sort.Strings(types)
	items := make([]SummaryItem, 0, len(types))
	for _, name := range types {
		items = append(items, SummaryItem{Label: name, Value: Number(byType[name])})
	}

	return &ReportData{
		Title: "Expenses Report",
		Type:  TypeExpenses,
		Range: rng,
		Summary: map[string]Cell{
			"totalCount":  Count(len(expenses)),
			"totalAmount": Number(total),
		},
		Sections: []Section{
			{
				Kind:    SectionTable,
				Label:   "Expenses",
				Columns: []string{"Type", "Account", "Date", "Amount", "Currency", "Rate", "Total"},
				Rows:    rows,
			},
			{
				Kind:  SectionSummary,
				Label: "By Type",
				Items: items,
			},
		},
	}, nil
}
