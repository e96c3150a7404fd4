// Package currency holds the base-currency registry and the single place
// where exchange-rate arithmetic happens.
package currency

import (
	"errors"
	"fmt"
)

// Currency describes one configured currency. Rate is expressed as base
// currency units per one unit of this currency, as of the last edit.
type Currency struct {
	ID     int64   `json:"id"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	IsBase bool    `json:"isBase"`
	Rate   float64 `json:"rate"`
}

// Normalize converts an amount recorded in a foreign currency into the base
// currency using the rate snapshotted on the transaction itself. A zero or
// negative rate is a data-entry defect upstream; the product is returned
// as-is so the discrepancy surfaces in the report instead of being hidden.
func Normalize(amount, rate float64) float64 {
	return amount * rate
}

// Converter carries the currency registry with its base singled out.
type Converter struct {
	base       Currency
	currencies map[string]Currency
}

// ErrNoBase is returned when no currency is flagged as base.
var ErrNoBase = errors.New("currency: no base currency configured")

// NewConverter validates the registry and returns a Converter. Exactly one
// currency must be flagged base, and its rate must be 1.
func NewConverter(currencies []Currency) (*Converter, error) {
	c := &Converter{currencies: make(map[string]Currency, len(currencies))}
	for _, cur := range currencies {
		if cur.IsBase {
			if c.base.Code != "" {
				return nil, fmt.Errorf("currency: multiple base currencies: %s and %s", c.base.Code, cur.Code)
			}
			if cur.Rate != 1 {
				return nil, fmt.Errorf("currency: base currency %s must have rate 1, got %v", cur.Code, cur.Rate)
			}
			c.base = cur
		}
		c.currencies[cur.Code] = cur
	}
	if c.base.Code == "" {
		return nil, ErrNoBase
	}
	return c, nil
}

// Base returns the base currency.
func (c *Converter) Base() Currency {
	return c.base
}

// Rate looks up the live rate for a currency code. Reports never call this;
// they use the rate snapshotted on each transaction so historical figures
// stay reproducible after a rate edit.
func (c *Converter) Rate(code string) (float64, bool) {
	cur, ok := c.currencies[code]
	if !ok {
		return 0, false
	}
	return cur.Rate, true
}

// List returns the registry in no particular order.
func (c *Converter) List() []Currency {
	out := make([]Currency, 0, len(c.currencies))
	for _, cur := range c.currencies {
		out = append(out, cur)
	}
	return out
}
