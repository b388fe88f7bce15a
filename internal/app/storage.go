package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/NachoSamo/SamoScore/internal/config"
	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
	"github.com/NachoSamo/SamoScore/internal/domain/profile"
	"github.com/NachoSamo/SamoScore/internal/domain/session"
	"github.com/NachoSamo/SamoScore/internal/domain/storage"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/redisstore"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/repository/memory"
	"github.com/NachoSamo/SamoScore/internal/infrastructure/repository/postgres"
	"github.com/NachoSamo/SamoScore/internal/platform/dburl"
)

type repositories struct {
	users     user.Repository
	sessions  session.Repository
	profiles  profile.Repository
	objects   storage.Repository
	favorites favorite.Repository
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := cfg.DBURL
	if cfg.DBDisablePreparedBinary {
		dsn = dburl.DisablePreparedBinary(dsn)
	}
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dburl.Name(cfg.DBURL)),
		otelsql.WithQueryFormatter(dburl.TraceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres %s: %w", dburl.Redact(cfg.DBURL), err)
	}
	return db, nil
}

// newRepositories keeps everything in memory when no database is configured.
// Sessions follow SESSION_STORE independently.
func newRepositories(cfg config.Config, db *sqlx.DB, rdb redis.UniversalClient, clock clockwork.Clock) (repositories, error) {
	var repos repositories
	if db != nil {
		repos = repositories{
			users:     postgres.NewAccountRepository(db),
			profiles:  postgres.NewProfileRepository(db),
			objects:   postgres.NewStorageObjectRepository(db),
			favorites: postgres.NewFavoriteRepository(db),
		}
	} else {
		repos = repositories{
			users:     memory.NewAccountRepository(),
			profiles:  memory.NewProfileRepository(),
			objects:   memory.NewStorageObjectRepository(),
			favorites: memory.NewFavoriteRepository(),
		}
	}

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		if rdb == nil {
			return repositories{}, fmt.Errorf("session store %q requires a redis connection", cfg.SessionStore)
		}
		repos.sessions = redisstore.NewSessionRepository(rdb, clock)
	case config.SessionStorePostgres:
		if db == nil {
			return repositories{}, fmt.Errorf("session store %q requires a database connection", cfg.SessionStore)
		}
		repos.sessions = postgres.NewSessionRepository(db)
	default:
		repos.sessions = memory.NewSessionRepository(clock)
	}

	return repos, nil
}
