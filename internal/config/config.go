package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"screenguess/internal/scheduler"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	CatalogPath    string

	TokenSecret  string
	TokenTTL     time.Duration
	AdminKeyHash string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	LeaderboardKey string

	SESFromEmail string
	SESFromName  string
	AWSRegion    string
	AppBaseURL   string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	Debug         bool

	StandardPinnedLevels int
	StandardSeed         int64

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DatabasePath:   getEnv("DB_PATH", "./screenguess.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		CatalogPath:    getEnv("CATALOG_PATH", "./data/catalog.sample.json"),

		TokenSecret:  getEnv("TOKEN_SECRET", "dev-secret-change-me"),
		TokenTTL:     time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24*30)) * time.Hour,
		AdminKeyHash: getEnv("ADMIN_KEY_HASH", ""),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		LeaderboardKey: getEnv("LEADERBOARD_KEY", "screenguess:leaderboard"),

		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "ScreenGuess"),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		AppBaseURL:   strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		Debug:         getEnvBool("DEBUG", false),

		StandardPinnedLevels: getEnvInt("STANDARD_PINNED_LEVELS", 30),
		StandardSeed:         getEnvInt64("STANDARD_SEED", scheduler.DefaultSeed),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
}

// EmailEnabled reports whether share-by-email is configured
func (c *Config) EmailEnabled() bool {
	return c.SESFromEmail != ""
}

// LeaderboardEnabled reports whether a Redis leaderboard is configured
func (c *Config) LeaderboardEnabled() bool {
	return c.RedisAddr != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
