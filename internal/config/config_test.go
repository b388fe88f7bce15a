package config

import (
	"testing"
	"time"

	"github.com/NachoSamo/SamoScore/internal/domain/match"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MatchGroupingStrategy != match.StrategyDisplay {
		t.Fatalf("expected display strategy by default, got %q", cfg.MatchGroupingStrategy)
	}
	if cfg.DefaultSport != "Soccer" {
		t.Fatalf("unexpected default sport %q", cfg.DefaultSport)
	}
	if cfg.TheSportsDBAPIKey != "123" {
		t.Fatalf("unexpected api key default %q", cfg.TheSportsDBAPIKey)
	}
	if cfg.SessionStore != SessionStoreMemory {
		t.Fatalf("unexpected session store %q", cfg.SessionStore)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Location)
	}
	if cfg.CacheLiveTTL != 20*time.Second || cfg.CacheFinishedTTL != 30*time.Minute {
		t.Fatalf("unexpected cache ttls live=%s finished=%s", cfg.CacheLiveTTL, cfg.CacheFinishedTTL)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled in dev")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("MATCH_GROUPING_STRATEGY", "Unified")
	t.Setenv("APP_TIMEZONE", "America/Argentina/Buenos_Aires")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("FEED_WORKERS", "8")
	t.Setenv("LOG_FILE", "/var/log/samoscore/api.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MatchGroupingStrategy != match.StrategyUnified {
		t.Fatalf("unexpected strategy %q", cfg.MatchGroupingStrategy)
	}
	if cfg.Location.String() != "America/Argentina/Buenos_Aires" {
		t.Fatalf("unexpected location %s", cfg.Location)
	}
	if cfg.FeedWorkers != 8 {
		t.Fatalf("unexpected feed workers %d", cfg.FeedWorkers)
	}
	if cfg.LogFile.Path != "/var/log/samoscore/api.log" || cfg.LogFile.MaxSizeMB != 100 {
		t.Fatalf("unexpected log file options %+v", cfg.LogFile)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod by default")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown strategy", env: map[string]string{"MATCH_GROUPING_STRATEGY": "fuzzy"}},
		{name: "redis store without url", env: map[string]string{"SESSION_STORE": "redis"}},
		{name: "postgres store without db", env: map[string]string{"SESSION_STORE": "postgres"}},
		{name: "unknown store", env: map[string]string{"SESSION_STORE": "disk"}},
		{name: "non positive ttl", env: map[string]string{"CACHE_LIVE_TTL": "0s"}},
		{name: "bad timezone", env: map[string]string{"APP_TIMEZONE": "Mars/Olympus"}},
		{name: "zero workers", env: map[string]string{"FEED_WORKERS": "0"}},
		{name: "uptrace without dsn", env: map[string]string{"UPTRACE_ENABLED": "true"}},
		{name: "betterstack without endpoint", env: map[string]string{"BETTERSTACK_ENABLED": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	if got != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn %q", got)
	}
}
