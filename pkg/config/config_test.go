package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EATZY_APP_ENV", "dev")
	t.Setenv("EATZY_APP_PORT", "8080")
	t.Setenv("EATZY_BACKEND_BASE_URL", "http://backend.test")
	t.Setenv("EATZY_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("EATZY_MAPS_API_KEY", "maps-key")
	t.Setenv("EATZY_MOMO_PARTNER_CODE", "EATZY01")
	t.Setenv("EATZY_MOMO_ACCESS_KEY", "access")
	t.Setenv("EATZY_MOMO_SECRET_KEY", "secret")
	t.Setenv("EATZY_MOMO_REDIRECT_URL", "https://app.eatzy.test/payment/return")
	t.Setenv("EATZY_MOMO_NOTIFY_URL", "https://gateway.eatzy.test/ipn")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.App.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.App.LogLevel)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("expected default backend timeout, got %v", cfg.Backend.Timeout)
	}
	if cfg.Cache.RestaurantTTL != 5*time.Minute {
		t.Fatalf("expected default restaurant TTL, got %v", cfg.Cache.RestaurantTTL)
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatalf("env helpers disagree with EATZY_APP_ENV=dev")
	}
}

func TestLoadRejectsMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv registered the restore; unset so envconfig sees it missing.
	os.Unsetenv("EATZY_BACKEND_BASE_URL")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when backend base url is missing")
	}
}
