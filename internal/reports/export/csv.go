// Package export renders finished reports as spreadsheet artifacts. It
// consumes ReportData only; no report arithmetic happens here.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/meridian-erp/meridian-erp/internal/reports"
)

// WriteCSV serialises a report as CSV: the summary block first, then each
// section separated by a blank line. Raw values are preferred over display
// strings so downstream tooling gets machine-readable numbers.
func WriteCSV(w io.Writer, data *reports.ReportData) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{data.Title}); err != nil {
		return err
	}
	if err := writer.Write([]string{"From", formatBound(data, true)}); err != nil {
		return err
	}
	if err := writer.Write([]string{"To", formatBound(data, false)}); err != nil {
		return err
	}

	for _, section := range data.Sections {
		if err := writer.Write(nil); err != nil {
			return err
		}
		if err := writer.Write([]string{section.Label}); err != nil {
			return err
		}
		switch section.Kind {
		case reports.SectionTable:
			if err := writer.Write(section.Columns); err != nil {
				return err
			}
			for _, row := range section.Rows {
				record := make([]string, len(row))
				for i, cell := range row {
					record[i] = cellString(cell)
				}
				if err := writer.Write(record); err != nil {
					return err
				}
			}
		case reports.SectionSummary:
			for _, item := range section.Items {
				if err := writer.Write([]string{item.Label, cellString(item.Value)}); err != nil {
					return err
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatBound(data *reports.ReportData, lower bool) string {
	t := data.Range.To
	if lower {
		t = data.Range.From
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func cellString(c reports.Cell) string {
	if c.Raw != nil {
		return strconv.FormatFloat(*c.Raw, 'f', -1, 64)
	}
	return c.Display
}
