package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SESSION_LIFETIME", "COUNTRY_CODE", "GEMINI_MODEL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	if cfg.CountryCode != "254" {
		t.Errorf("CountryCode = %q, want 254", cfg.CountryCode)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("SESSION_LIFETIME", "120")
	t.Setenv("DB_HOST", "db.internal")

	cfg := LoadConfig()
	if cfg.Port != "9001" {
		t.Errorf("Port = %q, want 9001", cfg.Port)
	}
	if cfg.SessionTTL != 2*time.Minute {
		t.Errorf("SessionTTL = %v, want 2m", cfg.SessionTTL)
	}
	if cfg.DBHost != "db.internal" {
		t.Errorf("DBHost = %q", cfg.DBHost)
	}
}

func TestLoadConfigBadSeconds(t *testing.T) {
	t.Setenv("SESSION_LIFETIME", "not-a-number")
	cfg := LoadConfig()
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want fallback 1h", cfg.SessionTTL)
	}
}
