package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	QueueBackendDB     = "db"
	QueueBackendMemory = "memory"
)

type Config struct {
	// Application
	AppName  string
	AppEnv   string
	AppURL   string
	Port     string
	Timezone string

	// Database (driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Reminder queue
	QueueBackend           string // "db" or "memory"
	QueuePollInterval      time.Duration
	QueueVisibilityTimeout time.Duration
	QueueBatchSize         int
	QueueHandlerTimeout    time.Duration
	WorkerEmbedded         bool // run the reminder worker inside the HTTP server process

	// Observability (optional)
	SentryDSN string

	// Export storage (optional, S3-compatible: MinIO, AWS S3, Cloudflare R2, ...)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName:  envString("APP_NAME", "Streakly"),
		AppEnv:   envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:   envRequired("APP_URL"),
		Port:     envString("PORT", "8090"),
		Timezone: envString("APP_TIMEZONE", "UTC"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/streakly.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"),

		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour),

		EmailFrom:    envString("EMAIL_FROM", "reminders@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		QueueBackend:           envString("QUEUE_BACKEND", QueueBackendDB),
		QueuePollInterval:      envDuration("QUEUE_POLL_INTERVAL", 5*time.Second),
		QueueVisibilityTimeout: envDuration("QUEUE_VISIBILITY_TIMEOUT", 5*time.Minute),
		QueueBatchSize:         envInt("QUEUE_BATCH_SIZE", 20),
		QueueHandlerTimeout:    envDuration("QUEUE_HANDLER_TIMEOUT", 30*time.Second),
		WorkerEmbedded:         envBool("WORKER_EMBEDDED", true),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:        envString("S3_REGION", ""),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures reminder delivery is real in production.
// Development falls back to logging emails and may use the in-process queue.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.QueueBackend == QueueBackendMemory {
		slog.Error("production deployment requires a durable reminder queue",
			"hint", "set QUEUE_BACKEND=db")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// HasExportStorage reports whether exports are uploaded to S3 instead of streamed.
func (c *Config) HasExportStorage() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Location resolves APP_TIMEZONE, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}
