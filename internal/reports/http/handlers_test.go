package reporthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/reports"
	"github.com/meridian-erp/meridian-erp/internal/reports/export"
)

type stubService struct {
	lastReq reports.Request
	data    *reports.ReportData
	err     error
}

func (s *stubService) Build(_ context.Context, req reports.Request) (*reports.ReportData, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

type stubEnqueuer struct {
	lastFormat export.Format
	taskID     string
	err        error
}

func (s *stubEnqueuer) EnqueueReportExport(_ context.Context, _ reports.Request, format export.Format) (string, error) {
	s.lastFormat = format
	return s.taskID, s.err
}

func newTestRouter(service *stubService, enqueuer *stubEnqueuer) http.Handler {
	logger := slog.New(slog.DiscardHandler)
	h := NewHandler(logger, service, enqueuer)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestHandleBuild(t *testing.T) {
	service := &stubService{data: &reports.ReportData{Title: "Sales Report", Type: reports.TypeSales}}
	router := newTestRouter(service, &stubEnqueuer{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/sales?from=2026-03-01&to=2026-03-31&party_id=7", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, reports.TypeSales, service.lastReq.Type)
	require.Equal(t, int64(7), service.lastReq.Options.PartyID)
	require.Equal(t, reports.GroupNone, service.lastReq.Options.GroupBy)

	var body reports.ReportData
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "Sales Report", body.Title)
}

func TestHandleBuildRejectsInvertedRange(t *testing.T) {
	router := newTestRouter(&stubService{}, &stubEnqueuer{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/sales?from=2026-04-01&to=2026-03-01", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBuildAllowsMissingFromForAsOfReports(t *testing.T) {
	service := &stubService{data: &reports.ReportData{Type: reports.TypeReceivables}}
	router := newTestRouter(service, &stubEnqueuer{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/receivables?to=2026-03-31", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, service.lastReq.Range.From.IsZero())
}

func TestHandleBuildUnknownType(t *testing.T) {
	router := newTestRouter(&stubService{err: reports.ErrUnknownReportType}, &stubEnqueuer{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/aging?to=2026-03-31", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleBuildRejectsBadGroupBy(t *testing.T) {
	router := newTestRouter(&stubService{}, &stubEnqueuer{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/profit?from=2026-03-01&to=2026-03-31&group_by=week", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExportDefaultsToXLSX(t *testing.T) {
	enqueuer := &stubEnqueuer{taskID: "task-123"}
	router := newTestRouter(&stubService{}, enqueuer)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reports/sales/export?from=2026-03-01&to=2026-03-31", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, export.FormatXLSX, enqueuer.lastFormat)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "task-123", body["taskId"])
}
