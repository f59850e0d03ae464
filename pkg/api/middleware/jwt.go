package middleware

import (
	"net/http"
	"strings"

	"github.com/jordanlanch/leadmanager/pkg/auth"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/labstack/echo/v4"
)

// Context keys set by JWTMiddleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserName  = "user_name"
	ContextToken     = "token"
)

// JWTMiddleware creates a JWT authentication middleware
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "missing_token",
					Message: "Authorization header is required",
				})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "invalid_token_format",
					Message: "Authorization header must be 'Bearer {token}'",
				})
			}
			token := parts[1]

			claims, err := auth.ValidateJWT(token, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "invalid_token",
					Message: "Token is invalid or expired",
				})
			}

			c.Set(ContextToken, token)
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserEmail, claims.Email)
			c.Set(ContextUserName, claims.Name)

			return next(c)
		}
	}
}

// UserID returns the authenticated user's ID, or "" outside JWTMiddleware
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}
