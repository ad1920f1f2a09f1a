package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SuFxGIT/scoutarr-sub000/internal/handler/api"
	"github.com/SuFxGIT/scoutarr-sub000/internal/middleware"
	"github.com/SuFxGIT/scoutarr-sub000/internal/repository"
	"github.com/SuFxGIT/scoutarr-sub000/internal/scheduler"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	db *gorm.DB,
	core *scheduler.Core,
	logger *zap.Logger,
	apiKey string,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	// Handlers
	targetRepo := repository.NewTargetRepository(db)
	schedulerHandler := api.NewSchedulerHandler(core, logger)
	targetHandler := api.NewTargetHandler(targetRepo, core, logger)
	statsHandler := api.NewStatsHandler(
		repository.NewStatRepository(db),
		repository.NewRunRepository(db),
		logger,
	)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API group with auth middleware
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.APIAuth(apiKey))

	apiGroup.GET("/scheduler/status", schedulerHandler.Status)
	apiGroup.GET("/scheduler/history", schedulerHandler.History)
	apiGroup.DELETE("/scheduler/history", schedulerHandler.ClearHistory)
	apiGroup.POST("/scheduler/run", schedulerHandler.Run)

	apiGroup.GET("/targets", targetHandler.List)
	apiGroup.POST("/targets", targetHandler.Create)
	apiGroup.GET("/targets/:id", targetHandler.Get)
	apiGroup.PUT("/targets/:id", targetHandler.Update)
	apiGroup.DELETE("/targets/:id", targetHandler.Delete)

	apiGroup.GET("/stats", statsHandler.List)
	apiGroup.DELETE("/stats", statsHandler.Reset)
	apiGroup.GET("/runs", statsHandler.Runs)
}
