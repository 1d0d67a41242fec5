package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.AppointmentsTable != "appointments" {
		t.Errorf("expected default appointments table, got %s", cfg.AppointmentsTable)
	}
	if cfg.ReportsTable != "reports" {
		t.Errorf("expected default reports table, got %s", cfg.ReportsTable)
	}
	if cfg.GeminiModelID != "gemini-2.5-flash" {
		t.Errorf("expected default model id, got %s", cfg.GeminiModelID)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected default session TTL of 2h, got %s", cfg.SessionTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("MODEL_TIMEOUT", "30s")
	t.Setenv("ADMIN_PASSWORD_SECRET", "custom-admin-secret")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis addr override, got %s", cfg.RedisAddr)
	}
	if cfg.ModelTimeout != 30*time.Second {
		t.Errorf("expected model timeout 30s, got %s", cfg.ModelTimeout)
	}
	if cfg.AdminPasswordSecret != "custom-admin-secret" {
		t.Errorf("expected secret name override, got %s", cfg.AdminPasswordSecret)
	}
}

func TestGetEnvAsDurationInvalid(t *testing.T) {
	t.Setenv("MODEL_TIMEOUT", "not-a-duration")

	cfg := Load()
	if cfg.ModelTimeout != 60*time.Second {
		t.Errorf("invalid duration should fall back to default, got %s", cfg.ModelTimeout)
	}
}
