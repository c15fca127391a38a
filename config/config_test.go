package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Chatbot.Mode != "tfidf" {
		t.Errorf("expected default classifier mode tfidf, got %q", cfg.Chatbot.Mode)
	}
	if cfg.Chatbot.EmergencyNumber != "108" {
		t.Errorf("expected default emergency number 108, got %q", cfg.Chatbot.EmergencyNumber)
	}
	if cfg.Alerts.PollInterval != time.Hour {
		t.Errorf("expected default poll interval 1h, got %v", cfg.Alerts.PollInterval)
	}
	if cfg.Alerts.StopTimeout != 5*time.Second {
		t.Errorf("expected default stop timeout 5s, got %v", cfg.Alerts.StopTimeout)
	}
	if cfg.MessagingConfigured() {
		t.Error("messaging must be unconfigured without Twilio credentials")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALERT_POLL_INTERVAL", "30m")
	t.Setenv("SESSION_HISTORY_MAX", "10")
	t.Setenv("CLASSIFIER_MODE", "keyword")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.Alerts.PollInterval != 30*time.Minute {
		t.Errorf("expected 30m poll interval, got %v", cfg.Alerts.PollInterval)
	}
	if cfg.Chatbot.SessionHistoryMax != 10 {
		t.Errorf("expected session history 10, got %d", cfg.Chatbot.SessionHistoryMax)
	}
	if cfg.Chatbot.Mode != "keyword" {
		t.Errorf("expected keyword mode, got %q", cfg.Chatbot.Mode)
	}
}

func TestLoadRejectsInvalidClassifierMode(t *testing.T) {
	t.Setenv("CLASSIFIER_MODE", "neural")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid classifier mode")
	}
}

func TestLoadRejectsDefaultJWTSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	if _, err := Load(); err == nil {
		t.Error("expected error for default JWT secret in production")
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("ALERT_POLL_INTERVAL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Alerts.PollInterval != time.Hour {
		t.Errorf("expected fallback to 1h, got %v", cfg.Alerts.PollInterval)
	}
}
