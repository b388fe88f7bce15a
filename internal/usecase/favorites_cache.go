package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

const defaultFavoriteWriteTimeout = 10 * time.Second

// keyedList keeps items unique by key in first-insertion order.
type keyedList[T interface{ Key() string }] struct {
	order []string
	items map[string]T
}

func newKeyedList[T interface{ Key() string }](items []T) keyedList[T] {
	l := keyedList[T]{items: make(map[string]T, len(items))}
	for _, item := range items {
		l.put(item)
	}
	return l
}

func (l *keyedList[T]) put(item T) {
	key := item.Key()
	if l.items == nil {
		l.items = make(map[string]T)
	}
	if _, ok := l.items[key]; !ok {
		l.order = append(l.order, key)
	}
	l.items[key] = item
}

func (l *keyedList[T]) remove(key string) {
	if _, ok := l.items[key]; !ok {
		return
	}
	delete(l.items, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *keyedList[T]) has(key string) bool {
	_, ok := l.items[key]
	return ok
}

func (l *keyedList[T]) values() []T {
	out := make([]T, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.items[key])
	}
	return out
}

// FavoritesCache is the in-memory mirror of one user's favorites.
//
// Mutations are applied locally first and then written to the repository.
// A failed write is never rolled back directly; the cache reloads all three
// collections once instead. Refreshes carry a generation number so a slow
// refresh that started before a newer one, or before a user change, is
// dropped on completion. The mutex only guards memory; it is never held
// across repository calls.
type FavoritesCache struct {
	repo         favorite.Repository
	logger       *logging.Logger
	observer     FavoritesObserver
	clock        clockwork.Clock
	writeTimeout time.Duration

	mu      sync.RWMutex
	userID  string
	gen     uint64
	leagues keyedList[favorite.League]
	teams   keyedList[favorite.Team]
	sports  keyedList[favorite.Sport]
}

type FavoritesCacheConfig struct {
	Logger       *logging.Logger
	Observer     FavoritesObserver
	Clock        clockwork.Clock
	WriteTimeout time.Duration
}

func NewFavoritesCache(repo favorite.Repository, cfg FavoritesCacheConfig) *FavoritesCache {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = noopFavoritesObserver{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultFavoriteWriteTimeout
	}

	return &FavoritesCache{
		repo:         repo,
		logger:       logger,
		observer:     observer,
		clock:        clock,
		writeTimeout: writeTimeout,
	}
}

func (c *FavoritesCache) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// Bind attaches the cache to userID. A different user drops all state and
// reloads it; an empty user id only drops state.
func (c *FavoritesCache) Bind(ctx context.Context, userID string) favorite.Snapshot {
	c.mu.Lock()
	if c.userID == userID {
		c.mu.Unlock()
		return c.Snapshot()
	}
	c.resetLocked(userID)
	c.mu.Unlock()

	if userID == "" {
		return c.Snapshot()
	}
	return c.Refresh(ctx)
}

// Clear drops all state and unbinds the user.
func (c *FavoritesCache) Clear() {
	c.mu.Lock()
	c.resetLocked("")
	c.mu.Unlock()
}

func (c *FavoritesCache) resetLocked(userID string) {
	c.userID = userID
	c.gen++
	c.leagues = keyedList[favorite.League]{}
	c.teams = keyedList[favorite.Team]{}
	c.sports = keyedList[favorite.Sport]{}
}

// Refresh reloads the three collections in parallel and replaces local
// state wholesale. A collection that fails to load is logged and treated
// as empty. It is a no-op without a bound user, and a refresh whose context
// ends before it completes changes nothing.
func (c *FavoritesCache) Refresh(ctx context.Context) favorite.Snapshot {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoritesCache.Refresh", principalAttrs(c.UserID())...)
	defer span.End()

	c.mu.Lock()
	userID := c.userID
	if userID == "" {
		c.mu.Unlock()
		return favorite.Snapshot{}
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	var (
		leagues []favorite.League
		teams   []favorite.Team
		sports  []favorite.Sport
		wg      conc.WaitGroup
	)
	wg.Go(func() {
		items, err := c.repo.ListLeagues(ctx, userID)
		if err != nil {
			c.logger.WarnContext(ctx, "load favorite leagues failed", "user_id", userID, "error", err)
		}
		leagues = items
	})
	wg.Go(func() {
		items, err := c.repo.ListTeams(ctx, userID)
		if err != nil {
			c.logger.WarnContext(ctx, "load favorite teams failed", "user_id", userID, "error", err)
		}
		teams = items
	})
	wg.Go(func() {
		items, err := c.repo.ListSports(ctx, userID)
		if err != nil {
			c.logger.WarnContext(ctx, "load favorite sports failed", "user_id", userID, "error", err)
		}
		sports = items
	})
	wg.Wait()

	if err := ctx.Err(); err != nil {
		c.logger.DebugContext(ctx, "discard cancelled favorites refresh", "user_id", userID, "error", err)
		c.observer.ObserveFavoriteRefresh("cancelled")
		return c.Snapshot()
	}

	c.mu.Lock()
	if c.gen != gen || c.userID != userID {
		c.mu.Unlock()
		c.logger.DebugContext(ctx, "discard stale favorites refresh", "user_id", userID)
		c.observer.ObserveFavoriteRefresh("stale")
		return c.Snapshot()
	}
	c.leagues = newKeyedList(leagues)
	c.teams = newKeyedList(teams)
	c.sports = newKeyedList(sports)
	c.mu.Unlock()

	c.observer.ObserveFavoriteRefresh("applied")
	return c.Snapshot()
}

func (c *FavoritesCache) AddLeague(ctx context.Context, item favorite.League) (favorite.Snapshot, error) {
	if err := item.Validate(); err != nil {
		return favorite.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	userID, ok := c.apply(func(userID string, now time.Time) {
		item.UserID = userID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		c.leagues.put(item)
	})
	if !ok {
		return favorite.Snapshot{}, nil
	}
	return c.confirm(ctx, userID, favorite.KindLeague, "add", func(ctx context.Context) error {
		return c.repo.AddLeague(ctx, item)
	}), nil
}

func (c *FavoritesCache) AddTeam(ctx context.Context, item favorite.Team) (favorite.Snapshot, error) {
	if err := item.Validate(); err != nil {
		return favorite.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	userID, ok := c.apply(func(userID string, now time.Time) {
		item.UserID = userID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		c.teams.put(item)
	})
	if !ok {
		return favorite.Snapshot{}, nil
	}
	return c.confirm(ctx, userID, favorite.KindTeam, "add", func(ctx context.Context) error {
		return c.repo.AddTeam(ctx, item)
	}), nil
}

func (c *FavoritesCache) AddSport(ctx context.Context, item favorite.Sport) (favorite.Snapshot, error) {
	item.Name = favorite.SportName(item.Name)
	if err := item.Validate(); err != nil {
		return favorite.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	userID, ok := c.apply(func(userID string, now time.Time) {
		item.UserID = userID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		c.sports.put(item)
	})
	if !ok {
		return favorite.Snapshot{}, nil
	}
	return c.confirm(ctx, userID, favorite.KindSport, "add", func(ctx context.Context) error {
		return c.repo.AddSport(ctx, item)
	}), nil
}

// Remove drops the entity locally, then deletes it remotely. For leagues
// and teams id is the numeric provider id; for sports it is the sport name.
func (c *FavoritesCache) Remove(ctx context.Context, kind favorite.Kind, id string) (favorite.Snapshot, error) {
	var remote func(ctx context.Context, userID string) error
	key := id
	switch kind {
	case favorite.KindLeague:
		leagueID, err := parseFavoriteID(id)
		if err != nil {
			return favorite.Snapshot{}, err
		}
		key = strconv.Itoa(leagueID)
		remote = func(ctx context.Context, userID string) error { return c.repo.RemoveLeague(ctx, userID, leagueID) }
	case favorite.KindTeam:
		teamID, err := parseFavoriteID(id)
		if err != nil {
			return favorite.Snapshot{}, err
		}
		key = strconv.Itoa(teamID)
		remote = func(ctx context.Context, userID string) error { return c.repo.RemoveTeam(ctx, userID, teamID) }
	case favorite.KindSport:
		if favorite.SportName(id) == "" {
			return favorite.Snapshot{}, errInvalidFavoriteID(id)
		}
		key = favorite.SportKey(id)
		remote = func(ctx context.Context, userID string) error { return c.repo.RemoveSport(ctx, userID, id) }
	default:
		return favorite.Snapshot{}, errInvalidFavoriteKind(kind)
	}

	userID, ok := c.apply(func(string, time.Time) {
		switch kind {
		case favorite.KindLeague:
			c.leagues.remove(key)
		case favorite.KindTeam:
			c.teams.remove(key)
		case favorite.KindSport:
			c.sports.remove(key)
		}
	})
	if !ok {
		return favorite.Snapshot{}, nil
	}
	return c.confirm(ctx, userID, kind, "remove", func(ctx context.Context) error {
		return remote(ctx, userID)
	}), nil
}

// IsFavorite reads local state only.
func (c *FavoritesCache) IsFavorite(kind favorite.Kind, id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch kind {
	case favorite.KindLeague:
		return c.leagues.has(id)
	case favorite.KindTeam:
		return c.teams.has(id)
	case favorite.KindSport:
		return c.sports.has(favorite.SportKey(id))
	default:
		return false
	}
}

func (c *FavoritesCache) Snapshot() favorite.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return favorite.Snapshot{
		UserID:  c.userID,
		Leagues: c.leagues.values(),
		Teams:   c.teams.values(),
		Sports:  c.sports.values(),
	}
}

// FavoriteSet is the league and team id set the event filter reads.
func (c *FavoritesCache) FavoriteSet() match.FavoriteSet {
	snapshot := c.Snapshot()
	return match.NewFavoriteSet(snapshot.LeagueKeys(), snapshot.TeamKeys())
}

func (c *FavoritesCache) apply(mutate func(userID string, now time.Time)) (string, bool) {
	now := c.clock.Now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID == "" {
		return "", false
	}
	mutate(c.userID, now)
	return c.userID, true
}

// confirm issues the remote write detached from the caller's cancellation
// so a dropped request cannot leave the local and remote state apart.
func (c *FavoritesCache) confirm(ctx context.Context, userID string, kind favorite.Kind, op string, write func(context.Context) error) favorite.Snapshot {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoritesCache.confirm")
	defer span.End()

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)
	defer cancel()

	if err := write(writeCtx); err != nil {
		c.logger.WarnContext(ctx, "favorite write failed, reloading favorites",
			"user_id", userID,
			"kind", string(kind),
			"op", op,
			"error", err,
		)
		c.observer.ObserveFavoriteMutation(string(kind), op, "reconciled")
		return c.Refresh(writeCtx)
	}

	c.observer.ObserveFavoriteMutation(string(kind), op, "ok")
	return c.Snapshot()
}
