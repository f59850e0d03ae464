package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/leadmanager/config"
	"github.com/jordanlanch/leadmanager/pkg/api/errors"
	"github.com/jordanlanch/leadmanager/pkg/auth"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/labstack/echo/v4"
)

// UserStore is the account storage the auth handler needs
type UserStore interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	users     UserStore
	config    *config.ServerConfig
	metrics   *metrics.Metrics
	validator *validator.Validate
}

// NewAuthHandler creates a new auth handler. m may be nil.
func NewAuthHandler(users UserStore, cfg *config.ServerConfig, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		users:     users,
		config:    cfg,
		metrics:   m,
		validator: models.NewValidator(),
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a new user account with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.AuthResponse "User registered successfully"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 409 {object} models.ErrorResponse "User already exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.Register(ctx, req)
	if err != nil {
		return errors.FromError(c, err)
	}
	h.metrics.RecordUserRegistered()

	return h.respondWithToken(c, http.StatusCreated, user)
}

// Login godoc
// @Summary Login
// @Description Exchange email and password for a JWT
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.Authenticate(ctx, req.Email, req.Password)
	h.metrics.RecordLoginAttempt(err == nil)
	if err != nil {
		if domain.IsUnauthorized(err) {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "invalid_credentials",
				Message: "Invalid email or password",
			})
		}
		return errors.DatabaseError(c, err)
	}

	return h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, user *models.User) error {
	token, err := auth.GenerateJWT(user.ID, user.Email, user.Name, h.config.JWTSecret, h.config.JWTExpirationHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "token_generation_error",
		})
	}

	return c.JSON(status, models.AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}
