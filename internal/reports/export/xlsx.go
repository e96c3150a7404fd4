package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/meridian-erp/meridian-erp/internal/reports"
)

const summarySheet = "Summary"

// WriteXLSX renders a report as a workbook: one sheet per section plus a
// leading summary sheet. Numeric cells carry their raw values so the
// spreadsheet stays computable.
func WriteXLSX(w io.Writer, data *reports.ReportData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummarySheet(f, data); err != nil {
		return err
	}

	for i, section := range data.Sections {
		name := sheetName(section.Label, i)
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := writeSection(f, name, section); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, data *reports.ReportData) error {
	rows := [][]any{
		{data.Title},
		{"From", formatBound(data, true)},
		{"To", formatBound(data, false)},
		{},
	}
	keys := make([]string, 0, len(data.Summary))
	for key := range data.Summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rows = append(rows, []any{key, cellValue(data.Summary[key])})
	}
	return writeRows(f, summarySheet, rows)
}

func writeSection(f *excelize.File, sheet string, section reports.Section) error {
	var rows [][]any
	switch section.Kind {
	case reports.SectionTable:
		header := make([]any, len(section.Columns))
		for i, col := range section.Columns {
			header[i] = col
		}
		rows = append(rows, header)
		for _, row := range section.Rows {
			record := make([]any, len(row))
			for i, cell := range row {
				record[i] = cellValue(cell)
			}
			rows = append(rows, record)
		}
	case reports.SectionSummary:
		for _, item := range section.Items {
			rows = append(rows, []any{item.Label, cellValue(item.Value)})
		}
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(c reports.Cell) any {
	if c.Raw != nil {
		return *c.Raw
	}
	return c.Display
}

// sheetName keeps sheet titles inside the 31-character workbook limit and
// unique across sections.
func sheetName(label string, index int) string {
	name := label
	if name == "" {
		name = fmt.Sprintf("Section %d", index+1)
	}
	if len(name) > 27 {
		name = name[:27]
	}
	return fmt.Sprintf("%d %s", index+1, name)
}
