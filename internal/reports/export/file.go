package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/reports"
)

// Format names the supported artifact encodings.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat rejects formats outside csv/xlsx.
var ErrUnsupportedFormat = fmt.Errorf("export: unsupported format")

// Filename builds a collision-free artifact name for a rendered report.
func Filename(data *reports.ReportData, format Format) string {
	return fmt.Sprintf("%s-%s-%s-%s.%s",
		data.Type,
		formatBound(data, true),
		formatBound(data, false),
		uuid.NewString(),
		format,
	)
}

// WriteFile renders the report into dir and returns the artifact path.
func WriteFile(dir string, data *reports.ReportData, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(data, format))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		err = WriteCSV(f, data)
	case FormatXLSX:
		err = WriteXLSX(f, data)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
