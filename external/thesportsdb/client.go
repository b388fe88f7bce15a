package thesportsdb

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/NachoSamo/SamoScore/internal/domain/league"
	"github.com/NachoSamo/SamoScore/internal/domain/leaguestanding"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
	"github.com/NachoSamo/SamoScore/internal/platform/resilience"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

const (
	defaultBaseURL = "https://www.thesportsdb.com/api/v1/json"
	defaultAPIKey  = "123"
	maxBodyBytes   = 6 << 20
)

var apiKeySegmentRegex = regexp.MustCompile(`/json/[^/\s"']+`)
var errTheSportsDBTransient = crerr.New("thesportsdb transient failure")

// RequestObserver receives one call per finished provider request.
type RequestObserver interface {
	ObserveProviderRequest(endpoint, outcome string, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Retry          resilience.RetryConfig
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Clock          clockwork.Clock
	Observer       RequestObserver
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	retry      resilience.RetryConfig
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	clock      clockwork.Clock
	observer   RequestObserver
	flight     singleflight.Group
	// budget bounds a shared request across all of its attempts.
	budget time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = defaultAPIKey
	}

	retry := cfg.Retry.WithDefaults()
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		retry:      retry,
		budget:     time.Duration(retry.MaxAttempts) * (httpClient.Timeout + retry.Delay(retry.MaxAttempts)),
		logger:     logger.Named("thesportsdb"),
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker, clock),
		clock:      clock,
		observer:   cfg.Observer,
	}
}

// Breaker exposes the circuit breaker so callers can observe its state.
func (c *Client) Breaker() *resilience.CircuitBreaker {
	return c.breaker
}

func (c *Client) EventsByDay(ctx context.Context, date, sport string) ([]match.Match, error) {
	var payload eventsEnvelope
	query := map[string]string{"d": date}
	if sport = strings.TrimSpace(sport); sport != "" {
		query["s"] = sport
	}
	if err := c.doJSON(ctx, "eventsday.php", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch events date=%s sport=%s: %w", date, sport, err)
	}

	out := make([]match.Match, 0, len(payload.Events))
	for _, item := range payload.Events {
		out = append(out, mapEvent(item))
	}
	return out, nil
}

func (c *Client) LookupEvent(ctx context.Context, eventID string) (match.EventRecord, bool, error) {
	var payload eventsEnvelope
	if err := c.doJSON(ctx, "lookupevent.php", map[string]string{"id": eventID}, &payload); err != nil {
		return match.EventRecord{}, false, fmt.Errorf("lookup event id=%s: %w", eventID, err)
	}
	if len(payload.Events) == 0 {
		return match.EventRecord{}, false, nil
	}
	return mapEventDetail(payload.Events[0]), true, nil
}

func (c *Client) Timeline(ctx context.Context, eventID string) ([]match.TimelineEntry, error) {
	var payload timelineEnvelope
	if err := c.doJSON(ctx, "lookuptimeline.php", map[string]string{"id": eventID}, &payload); err != nil {
		return nil, fmt.Errorf("lookup timeline id=%s: %w", eventID, err)
	}

	out := make([]match.TimelineEntry, 0, len(payload.Timeline))
	for _, item := range payload.Timeline {
		out = append(out, mapTimeline(item))
	}
	return out, nil
}

func (c *Client) LeagueTable(ctx context.Context, leagueID, season string) ([]leaguestanding.Standing, error) {
	var payload tableEnvelope
	query := map[string]string{"l": leagueID}
	if season = strings.TrimSpace(season); season != "" {
		query["s"] = season
	}
	if err := c.doJSON(ctx, "lookuptable.php", query, &payload); err != nil {
		return nil, fmt.Errorf("lookup table league=%s season=%s: %w", leagueID, season, err)
	}

	out := make([]leaguestanding.Standing, 0, len(payload.Table))
	for _, item := range payload.Table {
		out = append(out, mapStanding(item))
	}
	return out, nil
}

func (c *Client) LookupLeague(ctx context.Context, leagueID string) (league.League, bool, error) {
	var payload leaguesEnvelope
	if err := c.doJSON(ctx, "lookupleague.php", map[string]string{"id": leagueID}, &payload); err != nil {
		return league.League{}, false, fmt.Errorf("lookup league id=%s: %w", leagueID, err)
	}
	if len(payload.Leagues) == 0 {
		return league.League{}, false, nil
	}
	return mapLeague(payload.Leagues[0]), true, nil
}

func (c *Client) AllLeagues(ctx context.Context) ([]league.League, error) {
	var payload leaguesEnvelope
	if err := c.doJSON(ctx, "all_leagues.php", nil, &payload); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]league.League, 0, len(payload.Leagues))
	for _, item := range payload.Leagues {
		out = append(out, mapLeague(item))
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, query map[string]string, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "thesportsdb circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
		c.observe(endpoint, "rejected", 0)
		return fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + "/" + url.PathEscape(c.apiKey) + "/" + endpoint
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	started := c.clock.Now()
	// Identical in-flight requests share one call that no single caller can
	// cancel; each caller only stops waiting when its own context ends.
	results := c.flight.DoChan(endpoint+"?"+values.Encode(), func() (any, error) {
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.budget)
		defer cancel()

		raw, reqErr := c.executeRequest(reqCtx, fullURL)
		if reqErr != nil && isTransientFailure(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})

	var (
		out any
		err error
	)
	select {
	case res := <-results:
		out, err = res.Val, res.Err
	case <-ctx.Done():
		c.observe(endpoint, "abandoned", c.clock.Since(started))
		return ctx.Err()
	}
	if err != nil {
		c.observe(endpoint, "error", c.clock.Since(started))
		return err
	}
	c.observe(endpoint, "ok", c.clock.Since(started))

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	// The free tier answers unknown ids with an empty body.
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %s", redactText(err.Error()))
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %s", errTheSportsDBTransient, redactText(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTheSportsDBTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTheSportsDBTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.retry.MaxAttempts {
			break
		}
		timer := c.clock.NewTimer(c.retry.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.Chan():
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "thesportsdb request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) observe(endpoint, outcome string, elapsed time.Duration) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveProviderRequest(endpoint, outcome, elapsed)
}

func isTransientFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errTheSportsDBTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// redactAPIURL hides the API key path segment.
func redactAPIURL(rawURL string) string {
	return apiKeySegmentRegex.ReplaceAllString(rawURL, "/json/REDACTED")
}

func redactText(value string) string {
	return apiKeySegmentRegex.ReplaceAllString(strings.TrimSpace(value), "/json/REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
