package cache

import (
	"context"
	"time"

	"github.com/NachoSamo/SamoScore/internal/domain/league"
	"github.com/NachoSamo/SamoScore/internal/domain/leaguestanding"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
	basecache "github.com/NachoSamo/SamoScore/internal/platform/cache"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

// RemoteCache is a shared second-level cache such as Redis.
type RemoteCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Observer counts cache hits per layer ("l1", "l2") and misses.
type Observer interface {
	ObserveCacheLookup(resource, outcome string)
}

type TTLConfig struct {
	Default  time.Duration
	Live     time.Duration
	Finished time.Duration
	// Reference applies to league lists, league details and tables.
	Reference time.Duration
}

func (c TTLConfig) normalize() TTLConfig {
	if c.Default <= 0 {
		c.Default = 2 * time.Minute
	}
	if c.Live <= 0 {
		c.Live = 20 * time.Second
	}
	if c.Finished <= 0 {
		c.Finished = 30 * time.Minute
	}
	if c.Reference <= 0 {
		c.Reference = 6 * time.Hour
	}
	return c
}

// ttlClassifier treats a status as live when either the feed grouping or
// the detail view would show it live, so no live match is cached long.
var ttlClassifier = match.NewClassifier(match.StrategyUnified)

// EventsTTL picks the lifetime of a day's events from their statuses:
// anything live is short-lived, an all-finished day is long-lived.
func (c TTLConfig) EventsTTL(items []match.Match) time.Duration {
	if len(items) == 0 {
		return c.Default
	}
	finished := 0
	for _, m := range items {
		switch ttlClassifier.Classify(m.RawStatus) {
		case match.StatusLive:
			return c.Live
		case match.StatusFinished:
			finished++
		}
	}
	if finished == len(items) {
		return c.Finished
	}
	return c.Default
}

func (c TTLConfig) eventTTL(m match.Match) time.Duration {
	return c.EventsTTL([]match.Match{m})
}

type SportsDataConfig struct {
	TTL      TTLConfig
	Remote   RemoteCache
	Observer Observer
	Logger   *logging.Logger
}

// SportsDataProvider caches provider reads in the process store and,
// when configured, in a remote cache shared between instances.
type SportsDataProvider struct {
	next     usecase.SportsDataProvider
	store    *basecache.Store
	remote   RemoteCache
	ttl      TTLConfig
	observer Observer
	logger   *logging.Logger
}

func NewSportsDataProvider(next usecase.SportsDataProvider, store *basecache.Store, cfg SportsDataConfig) *SportsDataProvider {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &SportsDataProvider{
		next:     next,
		store:    store,
		remote:   cfg.Remote,
		ttl:      cfg.TTL.normalize(),
		observer: cfg.Observer,
		logger:   logger,
	}
}

func (p *SportsDataProvider) EventsByDay(ctx context.Context, date, sport string) ([]match.Match, error) {
	items, err := load(ctx, p, "events", "events:"+date+":"+sport, func(ctx context.Context) ([]match.Match, time.Duration, error) {
		items, err := p.next.EventsByDay(ctx, date, sport)
		if err != nil {
			return nil, 0, err
		}
		return items, p.ttl.EventsTTL(items), nil
	})
	return append([]match.Match(nil), items...), err
}

type cachedEvent struct {
	Record match.EventRecord
	Found  bool
}

func (p *SportsDataProvider) LookupEvent(ctx context.Context, eventID string) (match.EventRecord, bool, error) {
	v, err := load(ctx, p, "event", "event:"+eventID, func(ctx context.Context) (cachedEvent, time.Duration, error) {
		record, found, err := p.next.LookupEvent(ctx, eventID)
		if err != nil {
			return cachedEvent{}, 0, err
		}
		ttl := p.ttl.Default
		if found {
			ttl = p.ttl.eventTTL(record.Match)
		}
		return cachedEvent{Record: record, Found: found}, ttl, nil
	})
	return v.Record, v.Found, err
}

func (p *SportsDataProvider) Timeline(ctx context.Context, eventID string) ([]match.TimelineEntry, error) {
	items, err := load(ctx, p, "timeline", "timeline:"+eventID, func(ctx context.Context) ([]match.TimelineEntry, time.Duration, error) {
		items, err := p.next.Timeline(ctx, eventID)
		return items, p.ttl.Live, err
	})
	return append([]match.TimelineEntry(nil), items...), err
}

func (p *SportsDataProvider) LeagueTable(ctx context.Context, leagueID, season string) ([]leaguestanding.Standing, error) {
	items, err := load(ctx, p, "table", "table:"+leagueID+":"+season, func(ctx context.Context) ([]leaguestanding.Standing, time.Duration, error) {
		items, err := p.next.LeagueTable(ctx, leagueID, season)
		return items, p.ttl.Default, err
	})
	return append([]leaguestanding.Standing(nil), items...), err
}

type cachedLeague struct {
	League league.League
	Found  bool
}

func (p *SportsDataProvider) LookupLeague(ctx context.Context, leagueID string) (league.League, bool, error) {
	v, err := load(ctx, p, "league", "league:"+leagueID, func(ctx context.Context) (cachedLeague, time.Duration, error) {
		item, found, err := p.next.LookupLeague(ctx, leagueID)
		return cachedLeague{League: item, Found: found}, p.ttl.Reference, err
	})
	return v.League, v.Found, err
}

func (p *SportsDataProvider) AllLeagues(ctx context.Context) ([]league.League, error) {
	items, err := load(ctx, p, "leagues", "leagues:all", func(ctx context.Context) ([]league.League, time.Duration, error) {
		items, err := p.next.AllLeagues(ctx)
		return items, p.ttl.Reference, err
	})
	return append([]league.League(nil), items...), err
}

// load reads through L1 then L2, and fills both on a miss. Remote cache
// failures degrade to the provider.
func load[T any](ctx context.Context, p *SportsDataProvider, resource, key string, fetch func(context.Context) (T, time.Duration, error)) (T, error) {
	var zero T
	outcome := "l1"
	v, err := p.store.GetOrLoadWithTTL(ctx, key, func(ctx context.Context) (any, time.Duration, error) {
		if p.remote != nil {
			var cached remoteEntry[T]
			ok, err := p.remote.Get(ctx, key, &cached)
			if err != nil {
				p.logger.WarnContext(ctx, "remote cache read failed", "key", key, "error", err)
			}
			if remaining := time.Until(cached.ExpiresAt); ok && remaining > 0 {
				outcome = "l2"
				return cached.Value, remaining, nil
			}
		}

		outcome = "miss"
		value, ttl, err := fetch(ctx)
		if err != nil {
			return nil, 0, err
		}
		if p.remote != nil {
			entry := remoteEntry[T]{Value: value, ExpiresAt: time.Now().Add(ttl)}
			if err := p.remote.Set(ctx, key, entry, ttl); err != nil {
				p.logger.WarnContext(ctx, "remote cache write failed", "key", key, "error", err)
			}
		}
		return value, ttl, nil
	})
	if p.observer != nil {
		p.observer.ObserveCacheLookup(resource, outcome)
	}
	if err != nil {
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

// remoteEntry carries its own expiry so L1 never outlives the L2 copy.
type remoteEntry[T any] struct {
	Value     T         `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}
