// Package documents models purchase and sale documents and the balance
// arithmetic shared between them.
package documents

import "time"

// Kind distinguishes the two document families. They are structurally
// identical for balance purposes; only the party semantics differ.
type Kind string

const (
	// KindPurchase marks supplier-facing documents.
	KindPurchase Kind = "purchase"
	// KindSale marks customer-facing documents.
	KindSale Kind = "sale"
)

// Document is a purchase or sale header with its settled total.
type Document struct {
	ID          int64
	Kind        Kind
	PartyID     int64
	PartyName   string
	Date        time.Time
	TotalAmount float64
	CurrencyID  int64
	Items       []Item
	Costs       []AdditionalCost
}

// Item is one document line.
type Item struct {
	ID         int64
	DocumentID int64
	ProductID  int64
	UnitID     int64
	Quantity   float64
	PerPrice   float64
	LineTotal  float64
	// Purchase items carry costing fields consumed later by batch valuation.
	CostPrice   float64
	RetailPrice float64
	ExpiryDate  *time.Time
}

// AdditionalCost is a document-level cost on top of the line items.
type AdditionalCost struct {
	ID         int64
	DocumentID int64
	Name       string
	Amount     float64
}

// Payment settles part of a document. Amount is in the payment's own
// currency; Rate is the base-currency rate snapshotted at entry time.
type Payment struct {
	ID         int64
	DocumentID int64
	Amount     float64
	Currency   string
	Rate       float64
	Date       time.Time
}
