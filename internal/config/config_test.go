package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Environment != "development" {
		t.Fatalf("environment = %q, want development", cfg.Environment)
	}
	if cfg.HTTP.Port != 8080 {
		t.Fatalf("http port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Security.MaxLoginFails != 5 {
		t.Fatalf("max login fails = %d, want 5", cfg.Security.MaxLoginFails)
	}
	if cfg.Security.LockoutDuration != 30*time.Minute {
		t.Fatalf("lockout duration = %s, want 30m", cfg.Security.LockoutDuration)
	}
	if cfg.Alerts.EventDedupWindow != 30*time.Second {
		t.Fatalf("event dedup window = %s, want 30s", cfg.Alerts.EventDedupWindow)
	}
	if cfg.Alerts.ConsecutiveSadCount != 3 {
		t.Fatalf("consecutive sad count = %d, want 3", cfg.Alerts.ConsecutiveSadCount)
	}
	if cfg.Alerts.ConsecutiveDedupWindow != time.Hour {
		t.Fatalf("consecutive dedup window = %s, want 1h", cfg.Alerts.ConsecutiveDedupWindow)
	}
	if cfg.Stats.CacheTTL != time.Minute {
		t.Fatalf("stats cache ttl = %s, want 1m", cfg.Stats.CacheTTL)
	}
	if !cfg.Detector.Enabled {
		t.Fatalf("detector should default to enabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("EMOCARE_ENVIRONMENT", "production")
	t.Setenv("EMOCARE_HTTP_PORT", "9090")
	t.Setenv("EMOCARE_SECURITY_MAXLOGINFAILS", "3")
	t.Setenv("EMOCARE_SECURITY_LOCKOUTDURATION", "10m")
	t.Setenv("EMOCARE_ALERTS_EVENTDEDUPWINDOW", "45s")
	t.Setenv("EMOCARE_DETECTOR_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Environment != "production" {
		t.Fatalf("environment = %q, want production", cfg.Environment)
	}
	if cfg.HTTP.Port != 9090 {
		t.Fatalf("http port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Security.MaxLoginFails != 3 {
		t.Fatalf("max login fails = %d, want 3", cfg.Security.MaxLoginFails)
	}
	if cfg.Security.LockoutDuration != 10*time.Minute {
		t.Fatalf("lockout duration = %s, want 10m", cfg.Security.LockoutDuration)
	}
	if cfg.Alerts.EventDedupWindow != 45*time.Second {
		t.Fatalf("event dedup window = %s, want 45s", cfg.Alerts.EventDedupWindow)
	}
	if cfg.Detector.Enabled {
		t.Fatalf("detector should be disabled by env override")
	}
}
