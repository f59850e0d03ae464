package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds configuration for the lead service (cmd/api)
type ServerConfig struct {
	// API Configuration
	APIPort        string
	APIHost        string
	APIEnvironment string

	// Database
	DatabaseDriver string
	DatabaseURL    string

	// JWT & Security
	JWTSecret          string
	JWTExpirationHours int

	// CORS
	CORSAllowedOrigins []string

	// Rate Limiting
	RateLimitRequestsPerMinute int
	RateLimitBurst             int

	// Seeding
	SeedCount    int
	SeedSchedule string
	DemoEmail    string
	DemoPassword string

	// Monitoring
	SentryDSN string

	// Logging
	LogLevel string
}

// ClientConfig holds configuration for the terminal client (cmd/leads)
type ClientConfig struct {
	APIBaseURL     string
	RequestTimeout time.Duration

	// Session storage
	RedisURL   string
	SessionKey string
	Token      string

	// Logging
	LogLevel string
	LogFile  string

	// List behaviour
	PageSize         int
	LatestOnly       bool
	SearchResetsPage bool

	// Export
	ExportDir          string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string
	S3Endpoint         string
}

// loadDotEnv reads a .env file when one exists. A missing file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

// LoadServer loads server configuration from environment variables
func LoadServer() *ServerConfig {
	loadDotEnv()
	return &ServerConfig{
		// API
		APIPort:        getEnv("API_PORT", "5000"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		APIEnvironment: getEnv("API_ENVIRONMENT", "development"),

		// Database
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite3"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:leads.db?_fk=1"),

		// JWT
		JWTSecret:          getEnv("JWT_SECRET", "change-this-in-production"),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),

		// CORS
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		// Rate Limiting
		RateLimitRequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 120),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 20),

		// Seeding
		SeedCount:    getEnvAsInt("SEED_COUNT", 50),
		SeedSchedule: getEnv("SEED_SCHEDULE", ""),
		DemoEmail:    getEnv("DEMO_EMAIL", "admin@example.com"),
		DemoPassword: getEnv("DEMO_PASSWORD", "password123"),

		// Monitoring
		SentryDSN: getEnv("SENTRY_DSN", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// LoadClient loads terminal client configuration from environment variables
func LoadClient() *ClientConfig {
	loadDotEnv()
	return &ClientConfig{
		APIBaseURL:     getEnv("LEADS_API_URL", "http://localhost:5000/api"),
		RequestTimeout: getEnvAsDuration("LEADS_REQUEST_TIMEOUT", 15*time.Second),

		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
		SessionKey: getEnv("LEADS_SESSION_KEY", "leads:session"),
		Token:      getEnv("LEADS_TOKEN", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", "leads.log"),

		PageSize:         getEnvAsInt("LEADS_PAGE_SIZE", 10),
		LatestOnly:       getEnvAsBool("LEADS_LATEST_ONLY", false),
		SearchResetsPage: getEnvAsBool("LEADS_SEARCH_RESETS_PAGE", false),

		ExportDir:          getEnv("EXPORT_DIR", "./exports"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
