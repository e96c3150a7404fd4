package currency

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// Lister exposes the currency table read used by the handler.
type Lister interface {
	List(ctx context.Context) ([]Currency, error)
}

// Handler serves the live currency table.
type Handler struct {
	logger *slog.Logger
	repo   Lister
}

// NewHandler constructs the currency HTTP handler.
func NewHandler(logger *slog.Logger, repo Lister) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers currency routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/currencies", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list currencies", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Currency lookup failed", "")
		return
	}
	httpx.JSON(w, http.StatusOK, currencies)
}
