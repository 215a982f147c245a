package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Fatalf("Port = %q, want 4000", cfg.Port)
	}
	if cfg.DatabaseURL != "./data.sqlite" {
		t.Fatalf("DatabaseURL = %q, want ./data.sqlite", cfg.DatabaseURL)
	}
	if cfg.TokenTTL() != 7*24*time.Hour {
		t.Fatalf("TokenTTL = %v, want 168h", cfg.TokenTTL())
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.TaskCacheTTL != 5*time.Minute {
		t.Fatalf("TaskCacheTTL = %v, want 5m", cfg.TaskCacheTTL)
	}
}

func TestLoadSplitsOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestValidateRejectsWeakCost(t *testing.T) {
	cfg := &Config{JWTSecret: "s", JWTTTL: 1, BcryptCost: 4, DatabaseURL: "x"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "BCRYPT_COST") {
		t.Fatalf("expected BCRYPT_COST error, got %v", err)
	}
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{JWTSecret: "s", JWTTTL: 0, BcryptCost: 10, DatabaseURL: "x"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "JWT_TTL_HOURS") {
		t.Fatalf("expected JWT_TTL_HOURS error, got %v", err)
	}
}
