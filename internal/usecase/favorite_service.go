package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
	"github.com/NachoSamo/SamoScore/internal/domain/session"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

type FavoriteServiceConfig struct {
	IdleTTL      time.Duration
	WriteTimeout time.Duration
	Clock        clockwork.Clock
	Observer     FavoritesObserver
	Logger       *logging.Logger
}

type sessionFavorites struct {
	cache    *FavoritesCache
	lastUsed time.Time
}

// FavoriteService owns one FavoritesCache per signed-in session. Caches are
// never shared between sessions or users.
type FavoriteService struct {
	repo   favorite.Repository
	cfg    FavoriteServiceConfig
	logger *logging.Logger

	mu     sync.Mutex
	caches map[string]*sessionFavorites
}

func NewFavoriteService(repo favorite.Repository, cfg FavoriteServiceConfig) *FavoriteService {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}

	return &FavoriteService{
		repo:   repo,
		cfg:    cfg,
		logger: cfg.Logger.Named("favorites"),
		caches: make(map[string]*sessionFavorites),
	}
}

// Open replaces any cache of the session with a fresh one loaded for principal.
func (s *FavoriteService) Open(ctx context.Context, principal user.Principal) *FavoritesCache {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Open", principalAttrs(principal.UserID)...)
	defer span.End()

	cache := s.newCache()
	s.mu.Lock()
	if previous, ok := s.caches[principal.SessionID]; ok {
		previous.cache.Clear()
	}
	s.caches[principal.SessionID] = &sessionFavorites{cache: cache, lastUsed: s.cfg.Clock.Now()}
	s.mu.Unlock()

	cache.Bind(ctx, principal.UserID)
	return cache
}

// Close discards the cache of a signed-out session.
func (s *FavoriteService) Close(sessionID string) {
	s.mu.Lock()
	entry, ok := s.caches[sessionID]
	delete(s.caches, sessionID)
	s.mu.Unlock()

	if ok {
		entry.cache.Clear()
	}
}

// ForPrincipal returns the session's cache, loading one when the session has
// none yet (for example after a restart). A cache bound to another user is
// rebuilt rather than merged.
func (s *FavoriteService) ForPrincipal(ctx context.Context, principal user.Principal) (*FavoritesCache, error) {
	if principal.UserID == "" || principal.SessionID == "" {
		return nil, fmt.Errorf("%w: session is required", ErrUnauthorized)
	}

	s.mu.Lock()
	entry, ok := s.caches[principal.SessionID]
	if ok {
		entry.lastUsed = s.cfg.Clock.Now()
	}
	s.mu.Unlock()

	if !ok {
		return s.Open(ctx, principal), nil
	}
	if entry.cache.UserID() != principal.UserID {
		entry.cache.Bind(ctx, principal.UserID)
	}
	return entry.cache, nil
}

// HandleSessionEvent keeps caches in step with sign-in and sign-out.
func (s *FavoriteService) HandleSessionEvent(ctx context.Context, event session.Event) {
	switch event.Type {
	case session.EventSignedIn:
		s.Open(ctx, user.Principal{
			UserID:    event.Session.UserID,
			Email:     event.Session.Email,
			SessionID: event.Session.ID,
		})
	case session.EventSignedOut:
		s.Close(event.Session.ID)
	}
}

// EvictIdle drops caches unused for longer than the idle TTL.
func (s *FavoriteService) EvictIdle() int {
	cutoff := s.cfg.Clock.Now().Add(-s.cfg.IdleTTL)

	s.mu.Lock()
	var evicted []*FavoritesCache
	for id, entry := range s.caches {
		if entry.lastUsed.Before(cutoff) {
			evicted = append(evicted, entry.cache)
			delete(s.caches, id)
		}
	}
	s.mu.Unlock()

	for _, cache := range evicted {
		cache.Clear()
	}
	return len(evicted)
}

// RunJanitor evicts idle caches every interval until ctx is done.
func (s *FavoriteService) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := s.cfg.Clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := s.EvictIdle(); n > 0 {
				s.logger.InfoContext(ctx, "evicted idle favorites caches", "count", n)
			}
		}
	}
}

func (s *FavoriteService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.caches)
}

func (s *FavoriteService) newCache() *FavoritesCache {
	return NewFavoritesCache(s.repo, FavoritesCacheConfig{
		Logger:       s.logger,
		Observer:     s.cfg.Observer,
		Clock:        s.cfg.Clock,
		WriteTimeout: s.cfg.WriteTimeout,
	})
}
