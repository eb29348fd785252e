package config

import (
	"testing"
	"time"

	"github.com/alllucky/server/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("API_KEY_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Cache.Backend != "memory" {
		t.Errorf("expected default backend memory, got %s", cfg.Cache.Backend)
	}
	// Unset TTL envs fall back to the store's namespace defaults.
	if cfg.Cache.FortuneTTL != storage.TTLFortune {
		t.Errorf("expected fortune TTL %s, got %s", storage.TTLFortune, cfg.Cache.FortuneTTL)
	}
	if cfg.Cache.AlmanacTTL != storage.TTLFortune {
		t.Errorf("expected almanac TTL %s, got %s", storage.TTLFortune, cfg.Cache.AlmanacTTL)
	}
	if cfg.APIKey.TTL != storage.TTLAPIKey {
		t.Errorf("expected API key TTL %s, got %s", storage.TTLAPIKey, cfg.APIKey.TTL)
	}
	if cfg.Cache.SweepInterval != time.Minute {
		t.Errorf("expected sweep interval 1m, got %s", cfg.Cache.SweepInterval)
	}
	if cfg.APIKey.Prefix != "lucky_" {
		t.Errorf("expected key prefix lucky_, got %s", cfg.APIKey.Prefix)
	}
}

func TestValidateEnv(t *testing.T) {
	t.Setenv("ENV", "nonsense")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown ENV")
	}
}

func TestSecretRequiredInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("API_KEY_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing API_KEY_SECRET in production")
	}

	t.Setenv("API_KEY_SECRET", "s3cret")
	if _, err := Load(); err != nil {
		t.Errorf("unexpected error with secret set: %v", err)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("FORTUNE_CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Cache.FortuneTTL != storage.TTLFortune {
		t.Errorf("expected fallback %s, got %s", storage.TTLFortune, cfg.Cache.FortuneTTL)
	}
}
