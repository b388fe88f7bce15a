package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"

	"github.com/NachoSamo/SamoScore/internal/config"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/account"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/redisstore"
	"github.com/NachoSamo/SamoScore/internal/interfaces/httpapi"
	"github.com/NachoSamo/SamoScore/internal/observability"
	"github.com/NachoSamo/SamoScore/internal/platform/dburl"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

// Server owns the HTTP listener and everything it depends on.
type Server struct {
	HTTP *http.Server

	cfg       config.Config
	logger    *logging.Logger
	feed      *usecase.FeedService
	favorites *usecase.FavoriteService
	db        *sqlx.DB
	redis     *redis.Client
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()
	srv := &Server{cfg: cfg, logger: logger}

	if cfg.DBURL != "" {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		srv.db = db
		logger.Info("postgres connected", "db", dburl.Redact(cfg.DBURL))
	}
	if cfg.RedisURL != "" {
		rdb, err := redisstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			srv.Close()
			return nil, err
		}
		srv.redis = rdb
	}

	var rdb redis.UniversalClient
	if srv.redis != nil {
		rdb = srv.redis
	}
	repos, err := newRepositories(cfg, srv.db, rdb, clock)
	if err != nil {
		srv.Close()
		return nil, err
	}

	provider := newSportsDataProvider(cfg, rdb, metrics, clock, logger)

	srv.favorites = usecase.NewFavoriteService(repos.favorites, usecase.FavoriteServiceConfig{
		IdleTTL:      cfg.FavoritesIdleTTL,
		WriteTimeout: cfg.FavoritesWriteTimeout,
		Clock:        clock,
		Observer:     metrics,
		Logger:       logger,
	})
	srv.feed, err = usecase.NewFeedService(provider, srv.favorites, usecase.FeedServiceConfig{
		DefaultSport: cfg.DefaultSport,
		Strategy:     cfg.MatchGroupingStrategy,
		Location:     cfg.Location,
		Workers:      cfg.FeedWorkers,
		Clock:        clock,
		Logger:       logger,
	})
	if err != nil {
		srv.Close()
		return nil, err
	}

	profiles := usecase.NewProfileService(repos.profiles, repos.objects, usecase.ProfileServiceConfig{
		PublicBaseURL:  cfg.PublicBaseURL,
		MaxAvatarBytes: cfg.MaxAvatarBytes,
		Clock:          clock,
	})
	auth := usecase.NewAuthService(repos.users, repos.sessions, profiles, usecase.AuthServiceConfig{
		SessionTTL: cfg.SessionTTL,
		Clock:      clock,
		Logger:     logger,
	})
	verifier := account.NewCachedVerifier(auth, account.CachedVerifierConfig{
		TTL:   cfg.PrincipalCacheTTL,
		Clock: clock,
	})
	auth.Subscribe(srv.favorites)
	auth.Subscribe(verifier)

	metrics.TrackGauge("favorites_sessions", "Sessions holding a favorites cache.", func() float64 {
		return float64(srv.favorites.Len())
	})

	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		Feed:           srv.feed,
		Matches:        usecase.NewMatchService(provider, logger),
		Leagues:        usecase.NewLeagueService(provider, cfg.DefaultSeason, logger),
		Profiles:       profiles,
		Auth:           auth,
		Favorites:      srv.favorites,
		StreamInterval: cfg.StreamInterval,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Clock:          clock,
		Logger:         logger,
	})

	routerCfg := httpapi.RouterConfig{
		Handler:            handler,
		Verifier:           verifier,
		Logger:             logger,
		Observer:           metrics,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MetricsEnabled {
		routerCfg.Metrics = metrics.Handler()
	}

	srv.HTTP = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(routerCfg),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return srv, nil
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg conc.WaitGroup
	wg.Go(func() {
		s.favorites.RunJanitor(ctx, s.cfg.FavoritesJanitorInterval)
	})

	serveErr := make(chan error, 1)
	wg.Go(func() {
		s.logger.Info("http server starting", "addr", s.HTTP.Addr)
		if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := s.HTTP.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("graceful shutdown failed: %w", err)
	}

	cancel()
	wg.Wait()
	s.logger.Info("http server stopped")
	return runErr
}

func (s *Server) Close() {
	if s.feed != nil {
		s.feed.Close()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("close redis failed", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("close postgres failed", "error", err)
		}
	}
}
