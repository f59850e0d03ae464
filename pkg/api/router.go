package api

import (
	"context"
	"net/http"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	_ "github.com/jordanlanch/leadmanager/docs" // Swagger docs
	"github.com/jordanlanch/leadmanager/config"
	"github.com/jordanlanch/leadmanager/pkg/api/handlers"
	custommw "github.com/jordanlanch/leadmanager/pkg/api/middleware"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	custommiddleware "github.com/jordanlanch/leadmanager/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Deps are the services and settings the router is built from
type Deps struct {
	Config    *config.ServerConfig
	Leads     handlers.LeadStore
	Analytics domain.AnalyticsRepository
	Users     handlers.UserStore
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Logger    logger.Logger

	// Health reports whether the database is reachable
	Health func(ctx context.Context) error

	// Optional rate limiters. The caller owns them and stops them on shutdown.
	RateLimiter     *custommiddleware.RateLimiter
	AuthRateLimiter *custommiddleware.RateLimiter

	// Sentry captures panics when it was initialised
	Sentry bool
}

// NewRouter builds the lead service HTTP API
func NewRouter(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				args = append(args, "error", v.Error)
			}
			d.Logger.Info("request", args...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if d.Sentry {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true, // Repanic after capturing to let the Recover middleware handle it
		}))
	}

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}

	e.Use(middleware.CORSWithConfig(custommiddleware.CORSConfig(d.Config.CORSAllowedOrigins)))
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.SecurityHeadersConfig{}))
	e.Use(middleware.Gzip())

	if d.RateLimiter != nil {
		e.Use(d.RateLimiter.RateLimitMiddleware())
	}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "Lead Manager API",
			"version":     Version,
			"status":      "running",
			"environment": d.Config.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		if d.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()

			if err := d.Health(ctx); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]any{
					"status":   "unhealthy",
					"database": "down",
				})
			}
		}

		return c.JSON(http.StatusOK, map[string]any{
			"status":   "healthy",
			"database": "up",
		})
	})

	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(d.Users, d.Config, d.Metrics)
	authGroup := api.Group("/auth")
	if d.AuthRateLimiter != nil {
		authGroup.Use(d.AuthRateLimiter.RateLimitMiddleware())
	}
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	leadHandler := handlers.NewLeadHandler(d.Leads, d.Config.SeedCount, d.Metrics)
	analyticsHandler := handlers.NewAnalyticsHandler(d.Analytics)

	leadsGroup := api.Group("/leads", custommw.JWTMiddleware(d.Config.JWTSecret))
	leadsGroup.GET("", leadHandler.List)
	leadsGroup.POST("", leadHandler.Create)
	leadsGroup.GET("/analytics", analyticsHandler.GetSummary)
	leadsGroup.POST("/seed", leadHandler.Seed)
	leadsGroup.GET("/:id", leadHandler.GetByID)
	leadsGroup.PUT("/:id", leadHandler.Update)

	return e
}
