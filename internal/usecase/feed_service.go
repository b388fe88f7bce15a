package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
	"github.com/NachoSamo/SamoScore/internal/platform/staleguard"
)

const feedDateLayout = "2006-01-02"

type FeedServiceConfig struct {
	DefaultSport string
	Strategy     match.Strategy
	Location     *time.Location
	Workers      int
	Clock        clockwork.Clock
	Logger       *logging.Logger
}

type FeedQuery struct {
	Date  string
	Sport string
	// Principal is nil for anonymous callers, who always see every match.
	Principal *user.Principal
	// SupersedeKey groups requests where only the newest may complete.
	SupersedeKey string
}

type FeedResult struct {
	Date     string
	Sports   []string
	Strategy match.Strategy
	Filtered bool
	Fetched  int
	Groups   match.Groups
}

// FeedService builds the grouped match list for a day.
type FeedService struct {
	provider   SportsDataProvider
	favorites  *FavoriteService
	classifier *match.Classifier
	guard      *staleguard.Guard
	pool       *ants.Pool
	cfg        FeedServiceConfig
	logger     *logging.Logger
}

func NewFeedService(provider SportsDataProvider, favorites *FavoriteService, cfg FeedServiceConfig) (*FeedService, error) {
	if cfg.DefaultSport == "" {
		cfg.DefaultSport = "Soccer"
	}
	if cfg.Strategy == "" {
		cfg.Strategy = match.StrategyDisplay
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("create feed worker pool: %w", err)
	}

	return &FeedService{
		provider:   provider,
		favorites:  favorites,
		classifier: match.NewClassifier(cfg.Strategy),
		guard:      staleguard.New(),
		pool:       pool,
		cfg:        cfg,
		logger:     cfg.Logger.Named("feed"),
	}, nil
}

// Close releases the worker pool.
func (s *FeedService) Close() {
	s.pool.Release()
}

func (s *FeedService) Strategy() match.Strategy {
	return s.classifier.Strategy()
}

// Today is the current date in the configured timezone.
func (s *FeedService) Today() string {
	return s.cfg.Clock.Now().In(s.cfg.Location).Format(feedDateLayout)
}

func (s *FeedService) Matches(ctx context.Context, query FeedQuery) (FeedResult, error) {
	date := strings.TrimSpace(query.Date)
	if date == "" {
		date = s.Today()
	}
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Matches",
		attribute.String("samoscore.feed.date", date),
		attribute.String("samoscore.feed.sport", query.Sport),
		attribute.Bool("samoscore.feed.signed_in", query.Principal != nil),
	)
	defer span.End()

	if _, err := time.Parse(feedDateLayout, date); err != nil {
		return FeedResult{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	var cache *FavoritesCache
	if query.Principal != nil && s.favorites != nil {
		c, err := s.favorites.ForPrincipal(ctx, *query.Principal)
		if err != nil {
			return FeedResult{}, err
		}
		cache = c
	}

	ctx, ticket := s.guard.Begin(ctx, query.SupersedeKey)
	defer ticket.Done()

	sports := s.sportsToFetch(query.Sport, cache)
	fetched, err := s.fetchAll(ctx, date, sports)
	if err != nil {
		return FeedResult{}, err
	}
	if staleguard.Superseded(ctx) || !ticket.Current() {
		return FeedResult{}, fmt.Errorf("%w: feed for %s", ErrSuperseded, date)
	}

	visible := fetched
	filtered := false
	if cache != nil {
		favorites := cache.FavoriteSet()
		visible = match.Filter(fetched, favorites)
		filtered = !favorites.Empty()
	}

	return FeedResult{
		Date:     date,
		Sports:   sports,
		Strategy: s.classifier.Strategy(),
		Filtered: filtered,
		Fetched:  len(fetched),
		Groups:   match.Group(visible, s.classifier),
	}, nil
}

// sportsToFetch is the explicit sport, else the favorite sports, else the default.
func (s *FeedService) sportsToFetch(explicit string, cache *FavoritesCache) []string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return []string{explicit}
	}
	if cache != nil {
		if names := cache.Snapshot().SportNames(); len(names) > 0 {
			return names
		}
	}
	return []string{s.cfg.DefaultSport}
}

// fetchAll loads every sport on the worker pool and concatenates results in
// sport order. A failing sport is logged and contributes nothing.
func (s *FeedService) fetchAll(ctx context.Context, date string, sports []string) ([]match.Match, error) {
	results := make([][]match.Match, len(sports))
	var workers sync.WaitGroup

	for i, sport := range sports {
		workers.Add(1)
		if err := s.pool.Submit(func() {
			defer workers.Done()
			items, err := s.provider.EventsByDay(ctx, date, sport)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.WarnContext(ctx, "fetch events failed", "date", date, "sport", sport, "error", err)
				}
				return
			}
			results[i] = items
		}); err != nil {
			workers.Done()
			s.logger.ErrorContext(ctx, "submit feed fetch failed", "sport", sport, "error", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		if staleguard.Superseded(ctx) {
			return nil, fmt.Errorf("%w: feed for %s", ErrSuperseded, date)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: sports data timed out", ErrDependencyUnavailable)
		}
		return nil, err
	}

	var out []match.Match
	for _, items := range results {
		out = append(out, items...)
	}
	return out, nil
}
