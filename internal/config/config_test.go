package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.App.Port)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %s", cfg.App.Addr())
	}
	if cfg.App.RequestTimeout() != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.App.RequestTimeout())
	}
	if cfg.Uploads.Dir != "uploads" || cfg.Uploads.PublicPrefix != "/uploads" {
		t.Errorf("uploads = %+v", cfg.Uploads)
	}
	if cfg.RateLimit.IssuesPerDay != 0 {
		t.Errorf("rate limit = %d, want disabled", cfg.RateLimit.IssuesPerDay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("RATE_LIMIT_ISSUES_PER_DAY", "20")
	t.Setenv("IDENTITY_JWT_SECRET", "sekrit")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9999" {
		t.Errorf("port = %s", cfg.App.Port)
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.App.RequestTimeout())
	}
	if cfg.RateLimit.IssuesPerDay != 20 {
		t.Errorf("rate limit = %d", cfg.RateLimit.IssuesPerDay)
	}
	if cfg.Identity.JWTSecret != "sekrit" {
		t.Errorf("jwt secret = %q", cfg.Identity.JWTSecret)
	}
	if cfg.Postgres.RunMigrations {
		t.Error("migrations override ignored")
	}
}

func TestLoadMalformedIntsFallBack(t *testing.T) {
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "soon")
	t.Setenv("RATE_LIMIT_ISSUES_PER_DAY", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.RequestTimeoutSeconds != 30 {
		t.Errorf("timeout = %d, want default", cfg.App.RequestTimeoutSeconds)
	}
	if cfg.RateLimit.IssuesPerDay != 0 {
		t.Errorf("rate limit = %d, want default", cfg.RateLimit.IssuesPerDay)
	}
}
