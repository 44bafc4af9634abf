package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fekuna/storefront-service/internal/httpx"
	"github.com/fekuna/storefront-service/internal/stats"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type StatsHandler struct {
	uc     stats.UseCase
	logger logger.ZapLogger
}

func NewStatsHandler(uc stats.UseCase, log logger.ZapLogger) *StatsHandler {
	return &StatsHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes expects protected to carry the bearer gate.
func (h *StatsHandler) RegisterRoutes(protected chi.Router) {
	protected.Get("/stats", httpx.MakeHandler(h.logger, h.getStats))
}

func (h *StatsHandler) getStats(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), httpx.RequestTimeout)
	defer cancel()

	s, err := h.uc.AggregateStats(ctx)
	if err != nil {
		return err
	}

	return httpx.WriteJSON(w, http.StatusOK, s)
}
