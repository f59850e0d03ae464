package main

// @title Lead Manager API
// @version 1.0
// @description Lead storage, listing and analytics for the lead manager client.

// @host localhost:5000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jordanlanch/leadmanager/config"
	"github.com/jordanlanch/leadmanager/pkg/analytics"
	"github.com/jordanlanch/leadmanager/pkg/api"
	"github.com/jordanlanch/leadmanager/pkg/database"
	"github.com/jordanlanch/leadmanager/pkg/jobs"
	"github.com/jordanlanch/leadmanager/pkg/leads"
	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	custommiddleware "github.com/jordanlanch/leadmanager/pkg/middleware"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/jordanlanch/leadmanager/pkg/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg := config.LoadServer()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	appLogger := logger.New(cfg.LogLevel)

	// Initialize Sentry for error tracking
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.APIEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			sentryEnabled = true
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.APIEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Initialize database
	db, err := database.NewClient(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Prometheus metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prometheusMetrics := metrics.New(registry)
	log.Printf("✅ Prometheus metrics initialized")

	leadService := leads.NewService(db, prometheusMetrics)
	analyticsService := analytics.NewService(db, prometheusMetrics)
	userService := users.NewService(db)

	if err := bootstrap(cfg, leadService, userService); err != nil {
		log.Fatalf("❌ Failed to prepare demo data: %v", err)
	}

	// Scheduled reseed
	cronManager := jobs.NewCronManager(leadService, cfg.SeedCount, appLogger)
	if err := cronManager.SetupJobs(cfg.SeedSchedule); err != nil {
		log.Fatalf("❌ Failed to schedule jobs: %v", err)
	}
	cronManager.Start()

	// Initialize rate limiters
	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	authRateLimiter := custommiddleware.NewRateLimiter(10, 5) // 10 req/min for login and register
	defer globalRateLimiter.Stop()
	defer authRateLimiter.Stop()

	e := api.NewRouter(api.Deps{
		Config:          cfg,
		Leads:           leadService,
		Analytics:       analyticsService,
		Users:           userService,
		Metrics:         prometheusMetrics,
		Gatherer:        registry,
		Logger:          appLogger,
		Health:          db.Ping,
		RateLimiter:     globalRateLimiter,
		AuthRateLimiter: authRateLimiter,
		Sentry:          sentryEnabled,
	})

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 Lead Manager API starting on %s", address)
	log.Printf("📝 Log level: %s", cfg.LogLevel)
	log.Printf("🗄️  Database: %s", db.Dialect())
	log.Printf("🔐 JWT expiration: %d hours", cfg.JWTExpirationHours)
	log.Printf("🌍 CORS: %v", cfg.CORSAllowedOrigins)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d)", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	if cfg.SeedSchedule != "" {
		log.Printf("⏰ Cron jobs: reseed %d leads (%s)", cfg.SeedCount, cfg.SeedSchedule)
	}

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	cronManager.Stop()
	log.Println("✅ Cron jobs stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}

// bootstrap creates the demo account and seeds an empty lead store
func bootstrap(cfg *config.ServerConfig, leadService *leads.Service, userService *users.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if cfg.DemoEmail != "" && cfg.DemoPassword != "" {
		created, err := userService.EnsureUser(ctx, models.RegisterRequest{
			Name:     "Demo Admin",
			Email:    cfg.DemoEmail,
			Password: cfg.DemoPassword,
		})
		if err != nil {
			return fmt.Errorf("demo user: %w", err)
		}
		if created {
			log.Printf("👤 Demo user created: %s", cfg.DemoEmail)
		}
	}

	page, err := leadService.List(ctx, models.LeadListRequest{Page: 1, Limit: 1})
	if err != nil {
		return fmt.Errorf("count leads: %w", err)
	}
	if page.TotalLeads > 0 || cfg.SeedCount <= 0 {
		return nil
	}

	n, err := leadService.Seed(ctx, cfg.SeedCount)
	if err != nil {
		return fmt.Errorf("seed leads: %w", err)
	}
	log.Printf("🌱 Seeded %d sample leads", n)
	return nil
}
