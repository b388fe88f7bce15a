package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsObservations(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveProviderRequest("eventsday.php", "ok", 120*time.Millisecond)
	m.ObserveProviderRequest("eventsday.php", "ok", 80*time.Millisecond)
	m.ObserveCacheLookup("events", "l1")
	m.ObserveFavoriteMutation("leagues", "add", "error")
	m.ObserveFavoriteRefresh("discarded")

	if got := testutil.ToFloat64(m.providerRequests.WithLabelValues("eventsday.php", "ok")); got != 2 {
		t.Fatalf("expected 2 provider requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.cacheLookups.WithLabelValues("events", "l1")); got != 1 {
		t.Fatalf("expected 1 cache lookup, got %v", got)
	}
	if got := testutil.ToFloat64(m.favoriteWrites.WithLabelValues("leagues", "add", "error")); got != 1 {
		t.Fatalf("expected 1 failed favorite write, got %v", got)
	}
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveHTTPRequest("GET", "GET /v1/matches", 200, 10*time.Millisecond)
	m.SetCircuitOpen("thesportsdb", true)
	m.TrackGauge("favorite_sessions", "Open favorites caches.", func() float64 { return 3 })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`samoscore_http_requests_total{method="GET",route="GET /v1/matches",status="200"} 1`,
		`samoscore_circuit_breaker_open{name="thesportsdb"} 1`,
		`samoscore_favorite_sessions 3`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}
