package jobs

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/reports"
	"github.com/meridian-erp/meridian-erp/internal/reports/export"
)

type stubBuilder struct {
	lastReq reports.Request
	err     error
}

func (s *stubBuilder) Build(_ context.Context, req reports.Request) (*reports.ReportData, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &reports.ReportData{
		Title: "Sales Report",
		Type:  req.Type,
		Range: req.Range,
	}, nil
}

func TestHandleReportExportWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	builder := &stubBuilder{}
	exporter := NewExporter(builder, dir, slog.New(slog.DiscardHandler))

	task, err := NewReportExportTask(ReportExportPayload{
		Type:    reports.TypeSales,
		From:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		PartyID: 7,
		Format:  export.FormatCSV,
	})
	require.NoError(t, err)

	require.NoError(t, exporter.HandleReportExport(context.Background(), task))
	require.Equal(t, reports.TypeSales, builder.lastReq.Type)
	require.Equal(t, int64(7), builder.lastReq.Options.PartyID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestHandleBalanceSnapshotWritesBothBooks(t *testing.T) {
	dir := t.TempDir()
	builder := &stubBuilder{}
	exporter := NewExporter(builder, dir, slog.New(slog.DiscardHandler))

	task := asynq.NewTask(TaskBalanceSnapshot, nil)
	require.NoError(t, exporter.HandleBalanceSnapshot(context.Background(), task))
	require.True(t, builder.lastReq.Range.From.IsZero())
	require.False(t, builder.lastReq.Range.To.IsZero())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	require.True(t, strings.HasPrefix(names[0], "payables-"))
	require.True(t, strings.HasPrefix(names[1], "receivables-"))
}

func TestHandleReportExportSkipsRetryOnUnknownType(t *testing.T) {
	builder := &stubBuilder{err: reports.ErrUnknownReportType}
	exporter := NewExporter(builder, t.TempDir(), slog.New(slog.DiscardHandler))

	task, err := NewReportExportTask(ReportExportPayload{Type: "aging", Format: export.FormatCSV})
	require.NoError(t, err)

	err = exporter.HandleReportExport(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}
