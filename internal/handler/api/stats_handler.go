package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/repository"
)

// StatsHandler exposes the per-target aggregate search counters.
type StatsHandler struct {
	stats  *repository.StatRepository
	runs   *repository.RunRepository
	logger *zap.Logger
}

func NewStatsHandler(stats *repository.StatRepository, runs *repository.RunRepository, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, runs: runs, logger: logger}
}

// List returns every counter row.
func (h *StatsHandler) List(c echo.Context) error {
	stats, err := h.stats.FindAll(c.Request().Context())
	if err != nil {
		h.logger.Error("listing stats failed", zap.Error(err))
		return errorResponse(c, "failed to list stats")
	}
	return successResponse(c, "ok", stats)
}

// Reset zeroes all counters.
func (h *StatsHandler) Reset(c echo.Context) error {
	if err := h.stats.Reset(c.Request().Context()); err != nil {
		h.logger.Error("resetting stats failed", zap.Error(err))
		return errorResponse(c, "failed to reset stats")
	}
	return successResponse(c, "stats reset", nil)
}

// Runs returns the durable run log, newest first.
func (h *StatsHandler) Runs(c echo.Context) error {
	rows, err := h.runs.FindRecent(c.Request().Context(), 100)
	if err != nil {
		h.logger.Error("listing run logs failed", zap.Error(err))
		return errorResponse(c, "failed to list run logs")
	}
	return successResponse(c, "ok", rows)
}
