package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/focusboard/internal/domain/analytics"
	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

// HeatmapResponse wraps the heatmap days with the window that produced them
type HeatmapResponse struct {
	Timezone string          `json:"timezone"`
	Days     int             `json:"days"`
	Heatmap  []analytics.Day `json:"heatmap"`
}

// AnalyticsHandler serves derived statistics
type AnalyticsHandler struct {
	analyticsService ports.AnalyticsService
	defaultLocation  *time.Location
	defaultDays      int
	logger           *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService ports.AnalyticsService, defaultLocation *time.Location, defaultDays int, logger *logger.Logger) *AnalyticsHandler {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		defaultLocation:  defaultLocation,
		defaultDays:      defaultDays,
		logger:           logger,
	}
}

// GetStats godoc
// @Summary Gamification stats for the caller
// @Tags analytics
// @Produce json
// @Param tz query string false "IANA time zone, e.g. Europe/Berlin"
// @Success 200 {object} analytics.Stats
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /analytics/stats [get]
func (h *AnalyticsHandler) GetStats(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	loc, err := h.location(c)
	if err != nil {
		return err
	}

	stats, err := h.analyticsService.Stats(c.Request().Context(), userID, loc)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// GetHeatmap godoc
// @Summary Daily completion heatmap for the caller
// @Tags analytics
// @Produce json
// @Param days query int false "Window length in days (1-730)"
// @Param tz query string false "IANA time zone, e.g. Europe/Berlin"
// @Success 200 {object} HeatmapResponse
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /analytics/heatmap [get]
func (h *AnalyticsHandler) GetHeatmap(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	loc, err := h.location(c)
	if err != nil {
		return err
	}

	days := h.defaultDays
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 {
			return entities.NewValidationError("days", "Must be a positive integer")
		}
	}
	days = analytics.ClampHeatmapDays(days)

	heatmap, err := h.analyticsService.Heatmap(c.Request().Context(), userID, loc, days)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, HeatmapResponse{Timezone: loc.String(), Days: days, Heatmap: heatmap})
}

func (h *AnalyticsHandler) location(c echo.Context) (*time.Location, error) {
	tz := c.QueryParam("tz")
	if tz == "" {
		return h.defaultLocation, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, entities.NewValidationError("tz", "Unknown time zone")
	}
	return loc, nil
}
