package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
	"github.com/NachoSamo/SamoScore/internal/domain/session"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	favoritemock "github.com/NachoSamo/SamoScore/internal/mocks/domain/favorite"
)

func TestFavoriteService_ForPrincipalRequiresSession(t *testing.T) {
	t.Parallel()

	service := NewFavoriteService(favoritemock.NewRepository(t), FavoriteServiceConfig{})

	for _, principal := range []user.Principal{{}, {UserID: "u-1"}, {SessionID: "s-1"}} {
		if _, err := service.ForPrincipal(context.Background(), principal); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %+v, got %v", principal, err)
		}
	}
}

func TestFavoriteService_CachesAreScopedPerSession(t *testing.T) {
	t.Parallel()

	repo := favoritemock.NewRepository(t)
	expectEmptyLoad(repo, "u-1")
	expectEmptyLoad(repo, "u-1")
	repo.On("AddSport", mock.Anything, mock.Anything).Return(nil).Once()

	service := NewFavoriteService(repo, FavoriteServiceConfig{})
	ctx := context.Background()

	phone, err := service.ForPrincipal(ctx, user.Principal{UserID: "u-1", SessionID: "s-phone"})
	if err != nil {
		t.Fatalf("open phone session: %v", err)
	}
	laptop, err := service.ForPrincipal(ctx, user.Principal{UserID: "u-1", SessionID: "s-laptop"})
	if err != nil {
		t.Fatalf("open laptop session: %v", err)
	}
	if phone == laptop {
		t.Fatalf("expected distinct caches per session")
	}

	if _, err := phone.AddSport(ctx, favorite.Sport{Name: "Soccer"}); err != nil {
		t.Fatalf("add sport: %v", err)
	}
	if laptop.IsFavorite(favorite.KindSport, "Soccer") {
		t.Fatalf("expected other session cache to be untouched")
	}

	again, err := service.ForPrincipal(ctx, user.Principal{UserID: "u-1", SessionID: "s-phone"})
	if err != nil {
		t.Fatalf("reuse phone session: %v", err)
	}
	if again != phone {
		t.Fatalf("expected the same cache for the same session")
	}
	if service.Len() != 2 {
		t.Fatalf("expected 2 caches, got %d", service.Len())
	}
}

func TestFavoriteService_SessionEvents(t *testing.T) {
	t.Parallel()

	repo := favoritemock.NewRepository(t)
	repo.On("ListLeagues", mock.Anything, "u-1").Return([]favorite.League{{LeagueID: 4328, Name: "EPL"}}, nil).Once()
	repo.On("ListTeams", mock.Anything, "u-1").Return([]favorite.Team{}, nil).Once()
	repo.On("ListSports", mock.Anything, "u-1").Return([]favorite.Sport{}, nil).Once()

	service := NewFavoriteService(repo, FavoriteServiceConfig{})
	ctx := context.Background()
	signedIn := session.Session{ID: "s-1", UserID: "u-1", Email: "nacho@example.com"}

	service.HandleSessionEvent(ctx, session.Event{Type: session.EventSignedIn, Session: signedIn})
	cache, err := service.ForPrincipal(ctx, user.Principal{UserID: "u-1", SessionID: "s-1"})
	if err != nil {
		t.Fatalf("for principal: %v", err)
	}
	if !cache.IsFavorite(favorite.KindLeague, "4328") {
		t.Fatalf("expected cache loaded on sign-in")
	}

	service.HandleSessionEvent(ctx, session.Event{Type: session.EventSignedOut, Session: signedIn})
	if service.Len() != 0 {
		t.Fatalf("expected cache dropped on sign-out, len=%d", service.Len())
	}
	if cache.UserID() != "" || len(cache.Snapshot().Leagues) != 0 {
		t.Fatalf("expected signed-out cache to be cleared: %+v", cache.Snapshot())
	}
}

func TestFavoriteService_RebuildsCacheForDifferentUser(t *testing.T) {
	t.Parallel()

	repo := favoritemock.NewRepository(t)
	repo.On("ListLeagues", mock.Anything, "u-1").Return([]favorite.League{{LeagueID: 4328, Name: "EPL"}}, nil).Once()
	repo.On("ListTeams", mock.Anything, "u-1").Return([]favorite.Team{}, nil).Once()
	repo.On("ListSports", mock.Anything, "u-1").Return([]favorite.Sport{}, nil).Once()
	expectEmptyLoad(repo, "u-2")

	service := NewFavoriteService(repo, FavoriteServiceConfig{})
	ctx := context.Background()

	first, _ := service.ForPrincipal(ctx, user.Principal{UserID: "u-1", SessionID: "s-1"})
	second, err := service.ForPrincipal(ctx, user.Principal{UserID: "u-2", SessionID: "s-1"})
	if err != nil {
		t.Fatalf("for principal: %v", err)
	}
	if second.UserID() != "u-2" {
		t.Fatalf("expected cache bound to u-2, got %q", second.UserID())
	}
	if first.IsFavorite(favorite.KindLeague, "4328") {
		t.Fatalf("expected previous user's favorites to be gone")
	}
}

func TestFavoriteService_JanitorEvictsIdleCaches(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(testNow)
	repo := favoritemock.NewRepository(t)
	expectEmptyLoad(repo, "u-1")
	expectEmptyLoad(repo, "u-2")

	service := NewFavoriteService(repo, FavoriteServiceConfig{IdleTTL: 10 * time.Minute, Clock: clock})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := service.ForPrincipal(ctx, user.Principal{UserID: "u-1", SessionID: "s-1"}); err != nil {
		t.Fatalf("open s-1: %v", err)
	}
	clock.Advance(8 * time.Minute)
	if _, err := service.ForPrincipal(ctx, user.Principal{UserID: "u-2", SessionID: "s-2"}); err != nil {
		t.Fatalf("open s-2: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		service.RunJanitor(ctx, 5*time.Minute)
	}()

	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("wait for janitor ticker: %v", err)
	}
	clock.Advance(5 * time.Minute)

	deadline := time.Now().Add(2 * time.Second)
	for service.Len() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("expected idle session to be evicted, len=%d", service.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	<-done
}
