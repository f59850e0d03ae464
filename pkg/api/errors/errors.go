package errors

import (
	"log"
	"net/http"

	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/labstack/echo/v4"
)

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// DatabaseError returns a generic database error without exposing internal details
func DatabaseError(c echo.Context, err error) error {
	log.Printf("[DATABASE ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "database_error",
		Message: "A database error occurred. Please try again later.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// UnauthorizedError returns an unauthorized error with a safe message
func UnauthorizedError(c echo.Context, message string) error {
	if message == "" {
		message = "You are not authorized to access this resource."
	}
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// NotFoundError returns a not found error naming the resource
func NotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: resource + " not found",
	})
}

// ConflictError returns a conflict error
func ConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, models.ErrorResponse{
		Error:   "conflict",
		Message: message, // Message is safe to expose (e.g., "User already exists")
	})
}

// FromError writes the response matching a service error. Domain errors keep
// their message; anything else is treated as a database failure.
func FromError(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: domain.Message(err, "The requested resource was not found."),
		})
	case domain.IsUnauthorized(err), domain.IsSessionExpired(err):
		return UnauthorizedError(c, domain.Message(err, ""))
	case domain.IsConflict(err):
		return ConflictError(c, domain.Message(err, "Conflict"))
	case domain.IsValidation(err), domain.IsBadRequest(err):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: domain.Message(err, "Invalid request data."),
		})
	case domain.IsInternal(err):
		return InternalError(c, err)
	default:
		return DatabaseError(c, err)
	}
}
