package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/NachoSamo/SamoScore/internal/config"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/repository/memory"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                config.EnvDev,
		HTTPAddr:              ":0",
		SessionStore:          config.SessionStoreMemory,
		MetricsEnabled:        true,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
		MatchGroupingStrategy: match.StrategyDisplay,
		Location:              time.UTC,
		FeedWorkers:           2,
		ShutdownTimeout:       time.Second,
	}
}

func TestNewRepositories_MemoryWithoutDatabase(t *testing.T) {
	t.Parallel()

	repos, err := newRepositories(memoryConfig(), nil, nil, clockwork.NewFakeClock())
	if err != nil {
		t.Fatalf("new repositories: %v", err)
	}
	if _, ok := repos.users.(*memory.AccountRepository); !ok {
		t.Fatalf("expected memory account repository, got %T", repos.users)
	}
	if _, ok := repos.sessions.(*memory.SessionRepository); !ok {
		t.Fatalf("expected memory session repository, got %T", repos.sessions)
	}
	if _, ok := repos.favorites.(*memory.FavoriteRepository); !ok {
		t.Fatalf("expected memory favorite repository, got %T", repos.favorites)
	}
}

func TestNewRepositories_SessionStoreNeedsBackend(t *testing.T) {
	t.Parallel()

	for _, store := range []string{config.SessionStoreRedis, config.SessionStorePostgres} {
		cfg := memoryConfig()
		cfg.SessionStore = store
		if _, err := newRepositories(cfg, nil, nil, clockwork.NewFakeClock()); err == nil {
			t.Fatalf("expected error for session store %q without backend", store)
		}
	}
}

func TestNewHTTPServer_ServesHealthAndMetricsInMemoryMode(t *testing.T) {
	t.Parallel()

	srv, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	t.Cleanup(srv.Close)

	rec := httptest.NewRecorder()
	srv.HTTP.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.HTTP.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "samoscore_favorites_sessions") {
		t.Fatalf("metrics: status %d body %.200s", rec.Code, rec.Body.String())
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
