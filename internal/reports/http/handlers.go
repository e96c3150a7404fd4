// Package reporthttp exposes the report engine over HTTP.
package reporthttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/reports"
	"github.com/meridian-erp/meridian-erp/internal/reports/export"
)

const requestTimeout = 30 * time.Second

// ReportService defines the report engine contract used by the handler.
type ReportService interface {
	Build(ctx context.Context, req reports.Request) (*reports.ReportData, error)
}

// ExportEnqueuer schedules background export rendering.
type ExportEnqueuer interface {
	EnqueueReportExport(ctx context.Context, req reports.Request, format export.Format) (string, error)
}

// Handler coordinates HTTP requests for report building and export.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	exporter ExportEnqueuer
	validate *validator.Validate
}

// NewHandler constructs the report HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService, exporter ExportEnqueuer) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		exporter: exporter,
		validate: validator.New(),
	}
}

// MountRoutes registers report routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/{type}", h.handleBuild)
	r.Post("/reports/{type}/export", h.handleExport)
}

// reportQuery is the validated query surface. The engine itself never
// checks the window ordering; that contract lives here at the boundary.
type reportQuery struct {
	// From may stay zero for the as-of balance reports.
	From            time.Time
	To              time.Time `validate:"required"`
	Type            string
	PartyID         int64
	AccountID       int64
	GroupBy         string `validate:"omitempty,oneof=none product month"`
	IncludeExpenses bool
	Format          string `validate:"omitempty,oneof=csv xlsx"`
}

func (h *Handler) parseQuery(r *http.Request) (reportQuery, error) {
	q := reportQuery{
		Type:    chi.URLParam(r, "type"),
		GroupBy: r.URL.Query().Get("group_by"),
		Format:  r.URL.Query().Get("format"),
	}

	var err error
	if q.From, err = parseDate(r.URL.Query().Get("from")); err != nil {
		return q, errors.New("invalid from date")
	}
	if q.To, err = parseDate(r.URL.Query().Get("to")); err != nil {
		return q, errors.New("invalid to date")
	}
	if q.PartyID, err = parseID(r.URL.Query().Get("party_id")); err != nil {
		return q, errors.New("invalid party_id")
	}
	if q.AccountID, err = parseID(r.URL.Query().Get("account_id")); err != nil {
		return q, errors.New("invalid account_id")
	}
	q.IncludeExpenses = r.URL.Query().Get("include_expenses") == "true"

	if err := h.validate.Struct(q); err != nil {
		return q, err
	}
	if !q.From.IsZero() && q.From.After(q.To) {
		return q, errors.New("from must not be after to")
	}
	return q, nil
}

func (q reportQuery) request() reports.Request {
	rng := reports.DateRange{From: q.From, To: q.To}
	groupBy := reports.GroupBy(q.GroupBy)
	if groupBy == "" {
		groupBy = reports.GroupNone
	}
	return reports.Request{
		Type:  reports.Type(q.Type),
		Range: rng,
		Options: reports.Options{
			PartyID:         q.PartyID,
			AccountID:       q.AccountID,
			GroupBy:         groupBy,
			IncludeExpenses: q.IncludeExpenses,
		},
	}
}

func (h *Handler) handleBuild(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid report request", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data, err := h.service.Build(ctx, q.request())
	if err != nil {
		if errors.Is(err, reports.ErrUnknownReportType) {
			httpx.Problem(w, http.StatusNotFound, "Unknown report type", q.Type)
			return
		}
		h.logger.Error("build report", slog.String("type", q.Type), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Report failed", "")
		return
	}

	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid export request", err.Error())
		return
	}

	format := export.Format(q.Format)
	if format == "" {
		format = export.FormatXLSX
	}

	taskID, err := h.exporter.EnqueueReportExport(r.Context(), q.request(), format)
	if err != nil {
		h.logger.Error("enqueue export", slog.String("type", q.Type), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export enqueue failed", "")
		return
	}

	httpx.JSON(w, http.StatusAccepted, map[string]string{"taskId": taskID})
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseID(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
