package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/reports"
	"github.com/meridian-erp/meridian-erp/internal/reports/export"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// QueueReports carries report export rendering.
	QueueReports = "reports"
	// TaskReportExport is the task type for rendering report artifacts.
	TaskReportExport = "report:export"
	// TaskBalanceSnapshot renders the as-of receivables and payables books.
	TaskBalanceSnapshot = "report:snapshot"
)

// ReportExportPayload names a report to render and the artifact format.
type ReportExportPayload struct {
	Type            reports.Type    `json:"type"`
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	PartyID         int64           `json:"partyId,omitempty"`
	AccountID       int64           `json:"accountId,omitempty"`
	GroupBy         reports.GroupBy `json:"groupBy,omitempty"`
	IncludeExpenses bool            `json:"includeExpenses,omitempty"`
	Format          export.Format   `json:"format"`
}

// Request rebuilds the report request described by the payload.
func (p ReportExportPayload) Request() reports.Request {
	return reports.Request{
		Type:  p.Type,
		Range: reports.DateRange{From: p.From, To: p.To},
		Options: reports.Options{
			PartyID:         p.PartyID,
			AccountID:       p.AccountID,
			GroupBy:         p.GroupBy,
			IncludeExpenses: p.IncludeExpenses,
		},
	}
}

// NewReportExportTask constructs an Asynq task.
func NewReportExportTask(payload ReportExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportExport, data), nil
}

// ReportBuilder is the report engine surface the exporter consumes.
type ReportBuilder interface {
	Build(ctx context.Context, req reports.Request) (*reports.ReportData, error)
}

// Exporter renders queued reports into spreadsheet artifacts on disk.
type Exporter struct {
	builder ReportBuilder
	dir     string
	logger  *slog.Logger
}

// NewExporter constructs the export task handler.
func NewExporter(builder ReportBuilder, dir string, logger *slog.Logger) *Exporter {
	return &Exporter{builder: builder, dir: dir, logger: logger}
}

// HandleReportExport processes TaskReportExport tasks.
func (e *Exporter) HandleReportExport(ctx context.Context, t *asynq.Task) error {
	var payload ReportExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	data, err := e.builder.Build(ctx, payload.Request())
	if err != nil {
		if err == reports.ErrUnknownReportType {
			return asynq.SkipRetry
		}
		return err
	}

	path, err := export.WriteFile(e.dir, data, payload.Format)
	if err != nil {
		if err == export.ErrUnsupportedFormat {
			return asynq.SkipRetry
		}
		return err
	}

	e.logger.Info("report exported",
		slog.String("type", string(payload.Type)),
		slog.String("path", path),
	)
	return nil
}

// HandleBalanceSnapshot renders both balance books as of handling time.
// The worker schedules it nightly.
func (e *Exporter) HandleBalanceSnapshot(ctx context.Context, _ *asynq.Task) error {
	asOf := time.Now()
	for _, typ := range []reports.Type{reports.TypeReceivables, reports.TypePayables} {
		data, err := e.builder.Build(ctx, reports.Request{
			Type:  typ,
			Range: reports.DateRange{To: asOf},
		})
		if err != nil {
			return err
		}
		path, err := export.WriteFile(e.dir, data, export.FormatXLSX)
		if err != nil {
			return err
		}
		e.logger.Info("balance snapshot exported",
			slog.String("type", string(typ)),
			slog.String("path", path),
		)
	}
	return nil
}
