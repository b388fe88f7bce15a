package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/NachoSamo/SamoScore/internal/domain/session"
)

const sessionKeyPrefix = "samoscore:session:"

type sessionRecord struct {
	ID        string    `json:"id"`
	TokenHash string    `json:"token_hash"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionRepository stores each session under its token hash with a Redis
// TTL matching the session expiry.
type SessionRepository struct {
	client redis.UniversalClient
	clock  clockwork.Clock
}

func NewSessionRepository(client redis.UniversalClient, clock clockwork.Clock) *SessionRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SessionRepository{client: client, clock: clock}
}

func (r *SessionRepository) Save(ctx context.Context, s session.Session) error {
	ttl := s.ExpiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", s.ID)
	}

	raw, err := sonic.Marshal(sessionRecord(s))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.TokenHash, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (session.Session, bool, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, fmt.Errorf("redis get session: %w", err)
	}

	var record sessionRecord
	if err := sonic.Unmarshal(raw, &record); err != nil {
		return session.Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	return session.Session(record), true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+tokenHash).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
