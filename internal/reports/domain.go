// Package reports assembles dated financial reports from already-persisted
// transaction rows. Every invocation recomputes from source rows; nothing
// derived is ever stored.
package reports

import (
	"time"

	"github.com/meridian-erp/meridian-erp/internal/currency"
)

// Type enumerates the report families the aggregator can build.
type Type string

const (
	TypeSales       Type = "sales"
	TypePurchases   Type = "purchases"
	TypeExpenses    Type = "expenses"
	TypeAccounts    Type = "accounts"
	TypeProducts    Type = "products"
	TypeReceivables Type = "receivables"
	TypePayables    Type = "payables"
	TypeProfit      Type = "profit"
)

// DateRange bounds a report window, inclusive on both ends. As-of reports
// leave From zero to drop the lower bound.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Cell is one report value, carried both raw (for spreadsheet export) and
// pre-formatted (for table rendering). Text cells and undefined values leave
// Raw nil.
type Cell struct {
	Raw     *float64 `json:"raw,omitempty"`
	Display string   `json:"display"`
}

// SectionKind tags the two section layouts.
type SectionKind string

const (
	// SectionTable is a labeled column/row table.
	SectionTable SectionKind = "table"
	// SectionSummary is a labeled key/value list.
	SectionSummary SectionKind = "summary"
)

// SummaryItem is one labeled value in a summary-list section.
type SummaryItem struct {
	Label string `json:"label"`
	Value Cell   `json:"value"`
}

// Section is one block of a report: either a table or a summary list.
type Section struct {
	Kind    SectionKind   `json:"kind"`
	Label   string        `json:"label"`
	Columns []string      `json:"columns,omitempty"`
	Rows    [][]Cell      `json:"rows,omitempty"`
	Items   []SummaryItem `json:"items,omitempty"`
}

// ReportData is the engine's output artifact, consumed by table renderers
// and spreadsheet/document exporters alike.
type ReportData struct {
	Title    string          `json:"title"`
	Type     Type            `json:"type"`
	Range    DateRange       `json:"dateRange"`
	Summary  map[string]Cell `json:"summary"`
	Sections []Section       `json:"sections"`
}

// GroupBy selects the optional profit-report dimension. The dimensions are
// mutually exclusive.
type GroupBy string

const (
	GroupNone    GroupBy = "none"
	GroupProduct GroupBy = "product"
	GroupMonth   GroupBy = "month"
)

// Options carry per-report filters.
type Options struct {
	// PartyID narrows sales/purchases to one customer or supplier.
	PartyID int64
	// AccountID narrows the accounts report to one account.
	AccountID int64
	// GroupBy applies to the profit report only.
	GroupBy GroupBy
	// IncludeExpenses folds the expense total into the profit report.
	IncludeExpenses bool
}

// Request names a report to build.
type Request struct {
	Type    Type
	Range   DateRange
	Options Options
}

// Expense is an operating cost entry, normalized with its own rate snapshot.
type Expense struct {
	ID          int64
	ExpenseType string
	AccountID   int64
	AccountName string
	Amount      float64
	Currency    string
	Rate        float64
	Date        time.Time
}

// Total is the base-currency value of the expense.
func (e Expense) Total() float64 {
	return currency.Normalize(e.Amount, e.Rate)
}

// TransactionType enumerates account movements.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionWithdraw TransactionType = "withdraw"
)

// AccountTransaction is a deposit into or withdrawal from a money account.
type AccountTransaction struct {
	ID          int64
	AccountID   int64
	AccountName string
	Type        TransactionType
	Amount      float64
	Currency    string
	Rate        float64
	Date        time.Time
}

// Total is the base-currency value of the transaction.
func (t AccountTransaction) Total() float64 {
	return currency.Normalize(t.Amount, t.Rate)
}

// Product is the catalogue row joined into product-keyed report sections.
type Product struct {
	ID           int64
	Name         string
	CategoryName string
	UnitName     string
}
