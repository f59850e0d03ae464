package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4/middleware"
)

// AllowedMethods lists the methods the lead API answers cross-origin
var AllowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
}

// CORSConfig returns the CORS configuration for the given origins. Credentials
// are only allowed when the origins are listed explicitly.
func CORSConfig(origins []string) middleware.CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}

	return middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     AllowedMethods,
		AllowCredentials: !wildcard,
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		},
	}
}
