package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.AppMode != "dev" {
		t.Errorf("AppMode = %q, want dev", cfg.AppMode)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.JWT.Algorithm != "HS256" {
		t.Errorf("Algorithm = %q, want HS256", cfg.JWT.Algorithm)
	}
	if cfg.JWT.AccessTokenMins != 30 || cfg.JWT.RefreshTokenDays != 7 {
		t.Errorf("token lifetimes = %d min / %d days, want 30/7",
			cfg.JWT.AccessTokenMins, cfg.JWT.RefreshTokenDays)
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.Security.BcryptCost)
	}
	if cfg.Security.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.Security.RetentionDays)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without JWT_SECRET")
	}
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_MODE", "staging")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted invalid APP_MODE")
	}
}

func TestLoadRejectsNonPositiveLifetimes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_MINUTES", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted zero access token lifetime")
	}
}

func TestGetAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")

	dev := &Config{AppMode: "dev"}
	if got := dev.GetAllowedOrigins(); got != "*" {
		t.Errorf("dev origins = %q, want *", got)
	}

	prod := &Config{AppMode: "prod"}
	if got := prod.GetAllowedOrigins(); got != "" {
		t.Errorf("prod origins = %q, want empty", got)
	}

	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")
	if got := prod.GetAllowedOrigins(); got != "https://app.example.com" {
		t.Errorf("explicit origins = %q", got)
	}
}
