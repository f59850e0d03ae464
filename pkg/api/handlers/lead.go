package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/leadmanager/pkg/api/errors"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/labstack/echo/v4"
)

// MsgSeedSuccess is returned by the seed endpoint
const MsgSeedSuccess = "Sample leads generated successfully"

// LeadStore is the lead storage the handler serves from
type LeadStore interface {
	domain.LeadRepository
	Seed(ctx context.Context, count int) (int, error)
}

// LeadHandler handles lead endpoints
type LeadHandler struct {
	leadService LeadStore
	seedCount   int
	metrics     *metrics.Metrics
	validator   *validator.Validate
}

// NewLeadHandler creates a new lead handler. m may be nil.
func NewLeadHandler(leadService LeadStore, seedCount int, m *metrics.Metrics) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		seedCount:   seedCount,
		metrics:     m,
		validator:   models.NewValidator(),
	}
}

// List godoc
// @Summary List leads
// @Description Returns one page of leads, newest first. Search matches name, email or company case-insensitively.
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param page query integer false "Page number (1-100000)" default(1)
// @Param limit query integer false "Results per page (1-100)" default(10)
// @Param search query string false "Search text"
// @Param status query string false "Pipeline status (New, Contacted, Qualified, Proposal, Negotiation, Closed-Won, Closed-Lost)"
// @Param source query string false "Lead source (Website, Referral, Social Media, Advertisement, Other)"
// @Success 200 {object} models.LeadListResponse "One page of leads"
// @Failure 400 {object} models.ErrorResponse "Invalid filters"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	req := models.LeadListRequest{Page: 1, Limit: 10}
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}

	// Accept "closed won" or "social-media" as well as the canonical spelling
	status, err := models.ParseLeadStatus(string(req.Status))
	if err != nil {
		return errors.ValidationError(c, err)
	}
	source, err := models.ParseLeadSource(string(req.Source))
	if err != nil {
		return errors.ValidationError(c, err)
	}
	req.Status, req.Source = status, source

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	results, err := h.leadService.List(ctx, req)
	if err != nil {
		return errors.FromError(c, err)
	}

	h.metrics.RecordLeadList(req.Search != "" || req.Status.IsSet() || req.Source.IsSet())

	return c.JSON(http.StatusOK, results)
}

// GetByID godoc
// @Summary Get lead by ID
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} models.Lead "Lead details"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Router /leads/{id} [get]
func (h *LeadHandler) GetByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lead, err := h.leadService.GetByID(ctx, c.Param("id"))
	if err != nil {
		return errors.FromError(c, err)
	}

	return c.JSON(http.StatusOK, lead)
}

// Create godoc
// @Summary Create a lead
// @Description Status defaults to New and source to Website when omitted.
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.LeadInput true "Lead"
// @Success 201 {object} models.Lead "Created lead"
// @Failure 400 {object} models.ErrorResponse "Invalid lead"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lead, err := h.leadService.Create(ctx, input)
	if err != nil {
		return errors.FromError(c, err)
	}

	return c.JSON(http.StatusCreated, lead)
}

// Update godoc
// @Summary Update a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body models.LeadInput true "Lead"
// @Success 200 {object} models.Lead "Updated lead"
// @Failure 400 {object} models.ErrorResponse "Invalid lead"
// @Failure 404 {object} models.ErrorResponse "Lead not found"
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lead, err := h.leadService.Update(ctx, c.Param("id"), input)
	if err != nil {
		return errors.FromError(c, err)
	}

	return c.JSON(http.StatusOK, lead)
}

// Seed godoc
// @Summary Generate sample leads
// @Description Replaces every lead with freshly generated sample data.
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SeedResponse "Seed result"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /leads/seed [post]
func (h *LeadHandler) Seed(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	n, err := h.leadService.Seed(ctx, h.seedCount)
	if err != nil {
		return errors.DatabaseError(c, err)
	}

	return c.JSON(http.StatusOK, models.SeedResponse{
		Success: true,
		Message: MsgSeedSuccess,
		Count:   n,
	})
}

// bindInput binds a lead body, applies the form defaults and validates it
func (h *LeadHandler) bindInput(c echo.Context) (models.LeadInput, error) {
	input := models.NewLeadInput()
	if err := c.Bind(&input); err != nil {
		return input, err
	}
	if err := h.validator.Struct(input); err != nil {
		return input, err
	}
	return input, nil
}
