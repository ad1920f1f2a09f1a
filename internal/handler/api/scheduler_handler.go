package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
	"github.com/SuFxGIT/scoutarr-sub000/internal/scheduler"
)

// SchedulerHandler exposes the scheduler's status, history and manual-run
// surface.
type SchedulerHandler struct {
	core   *scheduler.Core
	logger *zap.Logger
}

func NewSchedulerHandler(core *scheduler.Core, logger *zap.Logger) *SchedulerHandler {
	return &SchedulerHandler{core: core, logger: logger}
}

// Status returns every armed timer with its next fire time.
func (h *SchedulerHandler) Status(c echo.Context) error {
	return successResponse(c, "ok", h.core.Status())
}

// History returns the in-memory run ledger, newest first.
func (h *SchedulerHandler) History(c echo.Context) error {
	return successResponse(c, "ok", h.core.History())
}

// ClearHistory empties the in-memory run ledger.
func (h *SchedulerHandler) ClearHistory(c echo.Context) error {
	h.core.ClearHistory()
	return successResponse(c, "history cleared", nil)
}

// Run triggers a manual run: global without a target parameter, otherwise
// for the one requested target.
func (h *SchedulerHandler) Run(c echo.Context) error {
	req, err := bindRunRequest(c)
	if err != nil {
		return errorResponse(c, "invalid request")
	}

	rec, err := h.core.RunNow(c.Request().Context(), req.Target)
	if err != nil {
		if errors.Is(err, scheduler.ErrAlreadyRunning) {
			return errorResponse(c, "a run is already in flight for this key")
		}
		h.logger.Error("manual run failed", zap.Uint("target", req.Target), zap.Error(err))
		return errorResponse(c, err.Error())
	}
	return successResponse(c, "run finished", rec)
}

// bindRunRequest accepts the target id both as a query parameter and in
// the JSON body. Echo's default binder only binds query params on
// GET/DELETE/HEAD, so the query form must be read explicitly for POST.
func bindRunRequest(c echo.Context) (models.RunRequest, error) {
	var req models.RunRequest
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	if raw := c.QueryParam("target"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return req, err
		}
		req.Target = uint(id)
	}
	return req, nil
}
