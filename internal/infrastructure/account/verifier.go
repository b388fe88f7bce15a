// Package account fronts access-token verification with a short-lived
// in-process principal cache.
package account

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/NachoSamo/SamoScore/internal/domain/session"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

type CachedVerifierConfig struct {
	TTL        time.Duration
	MaxEntries int
	Clock      clockwork.Clock
}

// CachedVerifier remembers verified principals by token hash. It listens to
// session events so a signed-out token stops verifying immediately.
type CachedVerifier struct {
	next   TokenVerifier
	cache  *principalCache
	flight singleflight.Group
}

func NewCachedVerifier(next TokenVerifier, cfg CachedVerifierConfig) *CachedVerifier {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 10000
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &CachedVerifier{
		next:  next,
		cache: newPrincipalCache(cfg.TTL, cfg.MaxEntries, cfg.Clock),
	}
}

func (v *CachedVerifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	key := usecase.HashToken(token)
	if principal, ok := v.cache.Get(key); ok {
		return principal, nil
	}

	result, err, _ := v.flight.Do(key, func() (any, error) {
		principal, err := v.next.VerifyAccessToken(ctx, token)
		if err != nil {
			return nil, err
		}
		v.cache.Set(key, principal, time.Time{})
		return principal, nil
	})
	if err != nil {
		return user.Principal{}, err
	}
	principal, _ := result.(user.Principal)
	return principal, nil
}

func (v *CachedVerifier) HandleSessionEvent(_ context.Context, event session.Event) {
	switch event.Type {
	case session.EventSignedIn:
		v.cache.Set(event.Session.TokenHash, user.Principal{
			UserID:    event.Session.UserID,
			Email:     event.Session.Email,
			SessionID: event.Session.ID,
		}, event.Session.ExpiresAt)
	case session.EventSignedOut:
		v.cache.Delete(event.Session.TokenHash)
		v.flight.Forget(event.Session.TokenHash)
	}
}
