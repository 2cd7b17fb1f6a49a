package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout 30s, got %s", cfg.RequestTimeout)
	}
	if cfg.NASABaseURL == "" {
		t.Error("Expected a default NASA base URL")
	}
	if cfg.MaxImagePixels <= 0 {
		t.Error("Expected a positive default pixel limit")
	}
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for non-numeric port")
	}

	t.Setenv("PORT", "70000")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for out-of-range port")
	}
}

func TestServerAddress(t *testing.T) {
	cfg := &Config{Host: " 127.0.0.1 ", Port: " 9090 "}
	if got := cfg.ServerAddress(); got != "127.0.0.1:9090" {
		t.Errorf("Expected 127.0.0.1:9090, got %s", got)
	}
}

func TestAzureConfigured(t *testing.T) {
	cfg := &Config{}
	if cfg.AzureConfigured() {
		t.Error("Expected Azure to be unconfigured without credentials")
	}
	cfg.AzureAccountName = "account"
	cfg.AzureAccountKey = "key"
	if !cfg.AzureConfigured() {
		t.Error("Expected Azure to be configured with both credentials")
	}
}
