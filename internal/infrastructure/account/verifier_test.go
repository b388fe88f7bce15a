package account

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/NachoSamo/SamoScore/internal/domain/session"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

type countingVerifier struct {
	calls atomic.Int32
	err   error
}

func (v *countingVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	v.calls.Add(1)
	if v.err != nil {
		return user.Principal{}, v.err
	}
	return user.Principal{UserID: "u-1", SessionID: "s-" + token}, nil
}

func TestCachedVerifier_CachesUntilTTL(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))
	next := &countingVerifier{}
	verifier := NewCachedVerifier(next, CachedVerifierConfig{TTL: 30 * time.Second, Clock: clock})

	for i := 0; i < 3; i++ {
		if _, err := verifier.VerifyAccessToken(context.Background(), "token-1"); err != nil {
			t.Fatalf("verify: %v", err)
		}
	}
	if got := next.calls.Load(); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}

	clock.Advance(31 * time.Second)
	if _, err := verifier.VerifyAccessToken(context.Background(), "token-1"); err != nil {
		t.Fatalf("verify after ttl: %v", err)
	}
	if got := next.calls.Load(); got != 2 {
		t.Fatalf("expected refresh after ttl, got %d calls", got)
	}
}

func TestCachedVerifier_DoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	next := &countingVerifier{err: usecase.ErrUnauthorized}
	verifier := NewCachedVerifier(next, CachedVerifierConfig{})

	for i := 0; i < 2; i++ {
		if _, err := verifier.VerifyAccessToken(context.Background(), "bad"); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if got := next.calls.Load(); got != 2 {
		t.Fatalf("expected failures to reach upstream every time, got %d", got)
	}
}

func TestCachedVerifier_SignOutInvalidates(t *testing.T) {
	t.Parallel()

	next := &countingVerifier{}
	verifier := NewCachedVerifier(next, CachedVerifierConfig{TTL: time.Hour})

	if _, err := verifier.VerifyAccessToken(context.Background(), "token-1"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	verifier.HandleSessionEvent(context.Background(), session.Event{
		Type:    session.EventSignedOut,
		Session: session.Session{ID: "s-token-1", TokenHash: usecase.HashToken("token-1")},
	})

	next.err = usecase.ErrUnauthorized
	if _, err := verifier.VerifyAccessToken(context.Background(), "token-1"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected signed-out token to be re-verified and rejected, got %v", err)
	}
}

func TestPrincipalCache_CapsEntriesAndSessionExpiry(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))
	cache := newPrincipalCache(time.Hour, 2, clock)

	cache.Set("a", user.Principal{UserID: "a"}, time.Time{})
	cache.Set("b", user.Principal{UserID: "b"}, clock.Now().Add(time.Minute))
	cache.Set("c", user.Principal{UserID: "c"}, time.Time{})
	if cache.Len() != 2 {
		t.Fatalf("expected cap of 2 entries, got %d", cache.Len())
	}

	clock.Advance(2 * time.Minute)
	if _, ok := cache.Get("b"); ok {
		t.Fatalf("expected entry bounded by session expiry to be gone")
	}
}
