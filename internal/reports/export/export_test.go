package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/meridian-erp/meridian-erp/internal/reports"
)

func sampleReport() *reports.ReportData {
	return &reports.ReportData{
		Title: "Sales Report",
		Type:  reports.TypeSales,
		Range: reports.DateRange{
			From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		Summary: map[string]reports.Cell{
			"totalAmount": reports.Number(10000),
		},
		Sections: []reports.Section{
			{
				Kind:    reports.SectionTable,
				Label:   "Sales",
				Columns: []string{"Customer", "Total"},
				Rows: [][]reports.Cell{
					{reports.Text("Acme"), reports.Number(10000)},
				},
			},
			{
				Kind:  reports.SectionSummary,
				Label: "Totals",
				Items: []reports.SummaryItem{
					{Label: "Total Amount", Value: reports.Number(10000)},
				},
			},
		},
	}
}

func TestWriteCSVPrefersRawValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	out := buf.String()
	require.Contains(t, out, "Sales Report")
	require.Contains(t, out, "Customer,Total")
	// Raw value, not the thousands-grouped display string.
	require.Contains(t, out, "Acme,10000")
	require.NotContains(t, out, "10,000.00")
}

func TestWriteXLSXSheetPerSection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Summary", "1 Sales", "2 Totals"}, sheets)

	value, err := f.GetCellValue("1 Sales", "A2")
	require.NoError(t, err)
	require.Equal(t, "Acme", value)
}

func TestWriteXLSXSummaryRowsSorted(t *testing.T) {
	data := sampleReport()
	data.Summary = map[string]reports.Cell{
		"totalRemaining": reports.Number(5500),
		"totalAmount":    reports.Number(10000),
		"totalCount":     reports.Number(1),
		"totalPaid":      reports.Number(4500),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, data))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)

	// Title, From, To, blank line, then the summary entries in key order.
	var keys []string
	for _, row := range rows {
		if len(row) > 0 && strings.HasPrefix(row[0], "total") {
			keys = append(keys, row[0])
		}
	}
	require.Equal(t, []string{"totalAmount", "totalCount", "totalPaid", "totalRemaining"}, keys)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, sampleReport(), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(path))
	require.True(t, strings.HasPrefix(filepath.Base(path), "sales-2026-03-01-2026-03-31-"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, content)
}

func TestWriteFileRejectsUnknownFormat(t *testing.T) {
	_, err := WriteFile(t.TempDir(), sampleReport(), Format("pdf"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
