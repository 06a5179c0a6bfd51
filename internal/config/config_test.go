package config

import (
	"testing"
	"time"
)

func TestLoadReadsAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("MBV_API_KEY", "MBV00000000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.APIKey != "MBV00000000" {
		t.Fatalf("expected api key from environment, got %q", cfg.APIKey)
	}
	if cfg.AppName != "clearlist-verifier" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("unexpected request timeout %v", cfg.RequestTimeout)
	}
	if cfg.StorageTTL != 30*24*time.Hour || cfg.StorageCleanupInterval != 12*time.Hour {
		t.Fatalf("unexpected storage durations: ttl=%v cleanup=%v", cfg.StorageTTL, cfg.StorageCleanupInterval)
	}
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("MBV_API_KEY", "MBV00000000")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("STORAGE_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("expected storage type none, got %q", cfg.StorageType)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("MBV_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when api key is missing")
	}
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("MBV_API_KEY", "MBV00000000")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero request timeout")
	}
}
