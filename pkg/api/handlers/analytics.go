package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/api/errors"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler handles analytics endpoints
type AnalyticsHandler struct {
	analyticsService domain.AnalyticsRepository
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService domain.AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetSummary godoc
// @Summary Get lead analytics
// @Description Returns lead totals, the Closed-Won conversion rate, total pipeline value and per-stage and per-source counts
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AnalyticsResponse "Analytics"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /leads/analytics [get]
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	summary, err := h.analyticsService.Summary(ctx)
	if err != nil {
		return errors.DatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, models.AnalyticsResponse{
		Success: true,
		Data:    summary,
	})
}
