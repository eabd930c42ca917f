package config

import (
	"testing"
	"time"

	"screenguess/internal/scheduler"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_TYPE", "TOKEN_TTL_HOURS", "STANDARD_SEED", "REDIS_ADDR", "SES_FROM_EMAIL", "APP_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 30*24*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if cfg.StandardSeed != scheduler.DefaultSeed {
		t.Errorf("StandardSeed = %d", cfg.StandardSeed)
	}
	if cfg.LeaderboardEnabled() || cfg.EmailEnabled() {
		t.Error("optional integrations should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "Postgres")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DEBUG", "true")
	t.Setenv("STANDARD_SEED", "42")
	t.Setenv("APP_BASE_URL", "https://guess.example.com/")
	t.Setenv("LOG_MAX_BACKUPS", "not-a-number")

	cfg := Load()
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.RedisDB != 3 || !cfg.LeaderboardEnabled() {
		t.Errorf("redis settings not applied: %+v", cfg)
	}
	if !cfg.Debug || cfg.StandardSeed != 42 {
		t.Errorf("Debug = %v, StandardSeed = %d", cfg.Debug, cfg.StandardSeed)
	}
	if cfg.AppBaseURL != "https://guess.example.com" {
		t.Errorf("AppBaseURL = %q", cfg.AppBaseURL)
	}
	if cfg.LogMaxBackups != 5 {
		t.Errorf("invalid integers should fall back to the default, got %d", cfg.LogMaxBackups)
	}
}
