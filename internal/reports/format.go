package reports

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders thousands-grouped display strings next to raw values.
var printer = message.NewPrinter(language.English)

const undefinedPlaceholder = "-"

// Number builds a numeric cell with a grouped two-decimal display string.
func Number(v float64) Cell {
	raw := v
	return Cell{Raw: &raw, Display: printer.Sprintf("%.2f", v)}
}

// Count builds an integer cell.
func Count(n int) Cell {
	raw := float64(n)
	return Cell{Raw: &raw, Display: printer.Sprintf("%d", n)}
}

// Quantity builds a cell for stock quantities, grouped without forcing
// decimal places.
func Quantity(v float64) Cell {
	raw := v
	return Cell{Raw: &raw, Display: printer.Sprintf("%v", v)}
}

// Percent builds a percentage cell. A nil value means the figure is
// undefined (no basis) and renders as a placeholder, never as "0%".
func Percent(p *float64) Cell {
	if p == nil {
		return Cell{Display: undefinedPlaceholder}
	}
	raw := *p
	return Cell{Raw: &raw, Display: printer.Sprintf("%.1f%%", *p)}
}

// Text builds a non-numeric cell.
func Text(s string) Cell {
	return Cell{Display: s}
}
