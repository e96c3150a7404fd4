package reports

import "context"

// AccountsReport lists account movements in the window and nets deposits
// against withdrawals. Options.AccountID narrows to a single account.
func (s *Service) AccountsReport(ctx context.Context, rng DateRange, opts Options) (*ReportData, error) {
	txns, err := s.repo.ListAccountTransactions(ctx, rng, opts.AccountID)
	if err != nil {
		return nil, err
	}

	var deposits, withdrawals float64
	rows := make([][]Cell, 0, len(txns))
	for _, tx := range txns {
		t := tx.Total()
		switch tx.Type {
		case TransactionDeposit:
			deposits += t
		case TransactionWithdraw:
			withdrawals += t
		}
		rows = append(rows, []Cell{
			Text(tx.AccountName),
			Text(string(tx.Type)),
			Text(formatDate(tx.Date)),
			Number(tx.Amount),
			Text(tx.Currency),
			Number(tx.Rate),
			Number(t),
		})
	}

	return &ReportData{
		Title: "Accounts Report",
		Type:  TypeAccounts,
		Range: rng,
		Summary: map[string]Cell{
			"totalCount":       Count(len(txns)),
			"totalDeposits":    Number(deposits),
			"totalWithdrawals": Number(withdrawals),
			"netMovement":      Number(deposits - withdrawals),
		},
		Sections: []Section{
			{
				Kind:    SectionTable,
				Label:   "Transactions",
				Columns: []string{"Account", "Type", "Date", "Amount", "Currency", "Rate", "Total"},
				Rows:    rows,
			},
			{
				Kind:  SectionSummary,
				Label: "Totals",
				Items: []SummaryItem{
					{Label: "Deposits", Value: Number(deposits)},
					{Label: "Withdrawals", Value: Number(withdrawals)},
					{Label: "Net Movement", Value: Number(deposits - withdrawals)},
				},
			},
		},
	}, nil
}
