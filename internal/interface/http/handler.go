package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuswatt/campus-energy/internal/domain/dashboard"
	"github.com/campuswatt/campus-energy/internal/domain/forecast"
	"github.com/campuswatt/campus-energy/internal/domain/seeder"
	apperrors "github.com/campuswatt/campus-energy/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	forecastSvc  forecast.Service
	dashboardSvc dashboard.Service
	seederSvc    seeder.Service
	cache        dashboard.ReportCache
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(forecastSvc forecast.Service, dashboardSvc dashboard.Service, seederSvc seeder.Service, cache dashboard.ReportCache, logger *slog.Logger) *Handler {
	return &Handler{
		forecastSvc:  forecastSvc,
		dashboardSvc: dashboardSvc,
		seederSvc:    seederSvc,
		cache:        cache,
		logger:       logger.With("component", "http.handler"),
	}
}

// RunPredictions executes the prediction pipeline over every building.
func (h *Handler) RunPredictions(c *gin.Context) {
	report, err := h.forecastSvc.RunPipeline(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "prediction_failed", errMessage(err), err))
		return
	}

	h.invalidateReportCache(c)

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"buildingsProcessed": report.BuildingsProcessed,
		"message":            "ML predictions generated successfully",
	})
}

// Dashboard returns the display-ready aggregation payload.
func (h *Handler) Dashboard(c *gin.Context) {
	report, err := h.dashboardSvc.Report(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "dashboard_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, report)
}

// Seed regenerates the sample dataset.
func (h *Handler) Seed(c *gin.Context) {
	summary, err := h.seederSvc.Seed(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "seed_failed", errMessage(err), err))
		return
	}

	h.invalidateReportCache(c)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"buildings":     summary.Buildings,
		"weatherPoints": summary.WeatherPoints,
		"energyPoints":  summary.EnergyPoints,
		"message":       "Sample energy data seeded successfully",
	})
}

// DismissInsight marks an insight dismissed so it leaves the dashboard.
func (h *Handler) DismissInsight(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "insight id is required", nil))
		return
	}

	if err := h.dashboardSvc.DismissInsight(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		code := "dismiss_failed"
		if apperrors.IsCode(err, "not_found") {
			status = http.StatusNotFound
			code = "not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.Status(http.StatusNoContent)
}

// Health reports liveness for deploy probes.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) invalidateReportCache(c *gin.Context) {
	if err := h.cache.Invalidate(c.Request.Context()); err != nil {
		h.logger.Warn("report cache invalidation failed", "error", err)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
