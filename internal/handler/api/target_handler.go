package api

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
	"github.com/SuFxGIT/scoutarr-sub000/internal/repository"
	"github.com/SuFxGIT/scoutarr-sub000/internal/schedule"
	"github.com/SuFxGIT/scoutarr-sub000/internal/scheduler"
)

// TargetHandler manages target CRUD. Every mutation rebuilds the
// scheduler's timers so a stale timer can never fire for a removed or
// edited target.
type TargetHandler struct {
	targets *repository.TargetRepository
	core    *scheduler.Core
	logger  *zap.Logger
}

func NewTargetHandler(targets *repository.TargetRepository, core *scheduler.Core, logger *zap.Logger) *TargetHandler {
	return &TargetHandler{targets: targets, core: core, logger: logger}
}

// List returns every configured target.
func (h *TargetHandler) List(c echo.Context) error {
	targets, err := h.targets.FindAll(c.Request().Context())
	if err != nil {
		h.logger.Error("listing targets failed", zap.Error(err))
		return errorResponse(c, "failed to list targets")
	}
	return successResponse(c, "ok", targets)
}

// Get returns one target by id.
func (h *TargetHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, "invalid target id")
	}
	target, err := h.targets.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		return errorResponse(c, "target not found")
	}
	return successResponse(c, "ok", target)
}

// Create inserts a new target and reloads the scheduler.
func (h *TargetHandler) Create(c echo.Context) error {
	var req models.TargetRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, "invalid request")
	}
	if msg := validateTarget(&req); msg != "" {
		return errorResponse(c, msg)
	}

	target := targetFromRequest(&req)
	if err := h.targets.Create(c.Request().Context(), target); err != nil {
		h.logger.Error("creating target failed", zap.Error(err))
		return errorResponse(c, "failed to create target")
	}
	h.reload(c)
	return successResponse(c, "target created", target)
}

// Update replaces an existing target and reloads the scheduler.
func (h *TargetHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, "invalid target id")
	}
	if _, err := h.targets.FindByID(c.Request().Context(), uint(id)); err != nil {
		return errorResponse(c, "target not found")
	}

	var req models.TargetRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, "invalid request")
	}
	if msg := validateTarget(&req); msg != "" {
		return errorResponse(c, msg)
	}

	target := targetFromRequest(&req)
	target.ID = uint(id)
	if err := h.targets.Update(c.Request().Context(), target); err != nil {
		h.logger.Error("updating target failed", zap.Uint("id", uint(id)), zap.Error(err))
		return errorResponse(c, "failed to update target")
	}
	h.reload(c)
	return successResponse(c, "target updated", target)
}

// Delete removes a target and reloads the scheduler.
func (h *TargetHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, "invalid target id")
	}
	if err := h.targets.Delete(c.Request().Context(), uint(id)); err != nil {
		h.logger.Error("deleting target failed", zap.Uint("id", uint(id)), zap.Error(err))
		return errorResponse(c, "failed to delete target")
	}
	h.reload(c)
	return successResponse(c, "target deleted", nil)
}

func (h *TargetHandler) reload(c echo.Context) {
	if err := h.core.Reload(c.Request().Context()); err != nil {
		h.logger.Error("scheduler reload after target change failed", zap.Error(err))
	}
}

// validateTarget rejects payloads the scheduler or orchestrator could not
// act on. It returns an empty string when the payload is acceptable.
func validateTarget(req *models.TargetRequest) string {
	if req.Name == "" {
		return "name is required"
	}
	if req.Service == "" {
		return "service is required"
	}
	if req.URL == "" {
		return "url is required"
	}
	if req.TagName == "" {
		return "tag_name is required"
	}
	if req.ScheduleEnabled {
		if _, err := schedule.Resolve(req.Schedule); err != nil {
			return "invalid schedule expression"
		}
	}
	return ""
}

func targetFromRequest(req *models.TargetRequest) *models.Target {
	return &models.Target{
		Name:            req.Name,
		Service:         req.Service,
		URL:             req.URL,
		APIKey:          req.APIKey,
		SkipTLSVerify:   req.SkipTLSVerify,
		Count:           req.Count,
		TagName:         req.TagName,
		IgnoreTag:       req.IgnoreTag,
		Monitored:       req.Monitored,
		Status:          req.Status,
		QualityProfile:  req.QualityProfile,
		Enabled:         req.Enabled,
		Unattended:      req.Unattended,
		Schedule:        req.Schedule,
		ScheduleEnabled: req.ScheduleEnabled,
	}
}
