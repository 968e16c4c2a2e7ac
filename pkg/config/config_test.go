package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to default to dev, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected dev environment")
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Fatalf("unexpected session ttl %v", cfg.Session.TTL)
	}
	if cfg.Gemini.ChatModel != "gemini-2.5-flash" {
		t.Fatalf("unexpected chat model %q", cfg.Gemini.ChatModel)
	}
	if cfg.Gemini.ImageModel != "gemini-2.5-flash-image" {
		t.Fatalf("unexpected image model %q", cfg.Gemini.ImageModel)
	}
	if cfg.Gemini.Enabled() {
		t.Fatal("gemini should be disabled without a credential")
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis should be disabled without a url")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NEONCLOUDS_APP_ENV", "prod")
	t.Setenv("NEONCLOUDS_GEMINI_API_KEY", "test-key")
	t.Setenv("NEONCLOUDS_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("NEONCLOUDS_AI_RATE_LIMIT_SESSION_LIMIT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatal("expected prod environment")
	}
	if !cfg.Gemini.Enabled() {
		t.Fatal("expected gemini enabled")
	}
	if !cfg.Redis.Enabled() {
		t.Fatal("expected redis enabled")
	}
	if cfg.AIRateLimit.SessionLimit != 3 {
		t.Fatalf("unexpected session limit %d", cfg.AIRateLimit.SessionLimit)
	}
}
