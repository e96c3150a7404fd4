// Package dashboard produces the headline figures for the landing view.
// It reads the same normalized rows the report engine does but skips the
// report assembly entirely.
package dashboard

// Stats is the landing-view payload.
type Stats struct {
	ProductsCount  int64   `json:"productsCount"`
	SuppliersCount int64   `json:"suppliersCount"`
	PurchasesCount int64   `json:"purchasesCount"`
	// MonthlyIncome is cash collected on sales dated in the current calendar
	// month, not the invoiced total.
	MonthlyIncome   float64 `json:"monthlyIncome"`
	DeductionsCount int64   `json:"deductionsCount"`
	TotalDeductions float64 `json:"totalDeductions"`
}

// Deduction is a payroll-style withholding, normalized like any other
// monetary row.
type Deduction struct {
	ID     int64
	Amount float64
	Rate   float64
}
