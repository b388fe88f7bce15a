package app

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/NachoSamo/SamoScore/external/thesportsdb"
	"github.com/NachoSamo/SamoScore/internal/config"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/redisstore"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/repository/cache"
	"github.com/NachoSamo/SamoScore/internal/observability"
	basecache "github.com/NachoSamo/SamoScore/internal/platform/cache"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
	"github.com/NachoSamo/SamoScore/internal/platform/resilience"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

const responseCachePrefix = "samoscore:tsdb:"

// newSportsDataProvider builds the TheSportsDB client and, when caching is
// on, puts the process cache in front of it with Redis as a shared layer.
func newSportsDataProvider(cfg config.Config, rdb redis.UniversalClient, metrics *observability.Metrics, clock clockwork.Clock, logger *logging.Logger) usecase.SportsDataProvider {
	client := thesportsdb.NewClient(thesportsdb.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.TheSportsDBTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL: cfg.TheSportsDBBaseURL,
		APIKey:  cfg.TheSportsDBAPIKey,
		Timeout: cfg.TheSportsDBTimeout,
		Retry: resilience.RetryConfig{
			MaxAttempts: cfg.TheSportsDBMaxRetries,
			Backoff:     cfg.TheSportsDBRetryBackoff,
		},
		Logger: logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.TheSportsDBCircuitEnabled,
			FailureThreshold: cfg.TheSportsDBCircuitFailureCount,
			OpenTimeout:      cfg.TheSportsDBCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.TheSportsDBCircuitHalfOpenMax,
		},
		Clock:    clock,
		Observer: metrics,
	})

	breakerLogger := logger.Named("thesportsdb")
	client.Breaker().OnStateChange(func(from, to resilience.CircuitState) {
		metrics.SetCircuitOpen("thesportsdb", to == resilience.CircuitStateOpen)
		breakerLogger.Warn("circuit breaker state changed", "from", string(from), "to", string(to))
	})

	if !cfg.CacheEnabled {
		return client
	}

	var remote cache.RemoteCache
	if rdb != nil {
		remote = redisstore.NewResponseCache(rdb, responseCachePrefix)
	}
	return cache.NewSportsDataProvider(client, basecache.NewStoreWithClock(cfg.CacheTTL, clock), cache.SportsDataConfig{
		TTL: cache.TTLConfig{
			Default:   cfg.CacheTTL,
			Live:      cfg.CacheLiveTTL,
			Finished:  cfg.CacheFinishedTTL,
			Reference: cfg.CacheReferenceTTL,
		},
		Remote:   remote,
		Observer: metrics,
		Logger:   logger,
	})
}
