package stock

// Valuation holds the derived worth of a single batch.
type Valuation struct {
	StockValue       float64
	PotentialRevenue float64
	PotentialProfit  float64
	// MarginPercent is nil when there is no revenue basis; renderers show a
	// placeholder, not "0%".
	MarginPercent *float64
}

// Valuate prices a batch at cost and at retail. The retail price falls back
// to the original purchase unit price when none was set.
func Valuate(b Batch) Valuation {
	retail := b.RetailPrice
	if retail == 0 {
		retail = b.PerPrice
	}

	v := Valuation{
		StockValue:       b.RemainingQty * b.CostPrice,
		PotentialRevenue: b.RemainingQty * retail,
	}
	v.PotentialProfit = v.PotentialRevenue - v.StockValue
	if v.PotentialRevenue > 0 {
		margin := v.PotentialProfit / v.PotentialRevenue * 100
		v.MarginPercent = &margin
	}
	return v
}

// Totals aggregates valuations across all batches in scope. Margin is
// recomputed from the aggregate figures, never averaged across batches.
type Totals struct {
	StockValue       float64
	PotentialRevenue float64
	PotentialProfit  float64
	MarginPercent    *float64
}

// Aggregate sums batch valuations.
func Aggregate(batches []Batch) Totals {
	var t Totals
	for _, b := range batches {
		v := Valuate(b)
		t.StockValue += v.StockValue
		t.PotentialRevenue += v.PotentialRevenue
		t.PotentialProfit += v.PotentialProfit
	}
	if t.PotentialRevenue > 0 {
		margin := t.PotentialProfit / t.PotentialRevenue * 100
		t.MarginPercent = &margin
	}
	return t
}
