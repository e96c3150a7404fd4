// Package stock values purchase batches that deplete as they are sold.
package stock

import "time"

// Batch is one purchase lot of a product. RemainingQty is maintained by the
// inventory-writing side as sales consume the lot; this package only reads
// it and never infers the consumption order.
type Batch struct {
	ProductID    int64
	ProductName  string
	BatchNumber  string
	PurchaseDate time.Time
	ExpiryDate   *time.Time
	UnitName     string
	OriginalQty  float64
	RemainingQty float64
	PerPrice     float64
	CostPrice    float64
	RetailPrice  float64
}

// ExpiresWithin reports whether the batch has an expiry date falling on or
// before the horizon.
func (b Batch) ExpiresWithin(horizon time.Time) bool {
	return b.ExpiryDate != nil && !b.ExpiryDate.After(horizon)
}
