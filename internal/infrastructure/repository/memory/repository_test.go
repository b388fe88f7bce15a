package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
	"github.com/NachoSamo/SamoScore/internal/domain/session"
	"github.com/NachoSamo/SamoScore/internal/domain/storage"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
)

func TestFavoriteRepository_AddIsUpsertAndKeepsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFavoriteRepository()

	_ = repo.AddLeague(ctx, favorite.League{UserID: "u-1", LeagueID: 4328, Name: "EPL"})
	_ = repo.AddLeague(ctx, favorite.League{UserID: "u-1", LeagueID: 4335, Name: "La Liga"})
	_ = repo.AddLeague(ctx, favorite.League{UserID: "u-1", LeagueID: 4328, Name: "English Premier League"})
	_ = repo.AddLeague(ctx, favorite.League{UserID: "u-2", LeagueID: 4328, Name: "EPL"})

	got, err := repo.ListLeagues(ctx, "u-1")
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(got) != 2 || got[0].LeagueID != 4328 || got[1].LeagueID != 4335 {
		t.Fatalf("unexpected leagues %+v", got)
	}
	if got[0].Name != "English Premier League" {
		t.Fatalf("expected upsert to overwrite name, got %q", got[0].Name)
	}

	if err := repo.RemoveLeague(ctx, "u-1", 4328); err != nil {
		t.Fatalf("remove league: %v", err)
	}
	got, _ = repo.ListLeagues(ctx, "u-1")
	if len(got) != 1 || got[0].LeagueID != 4335 {
		t.Fatalf("unexpected leagues after remove %+v", got)
	}
	other, _ := repo.ListLeagues(ctx, "u-2")
	if len(other) != 1 {
		t.Fatalf("expected other user's favorites untouched, got %+v", other)
	}
}

func TestFavoriteRepository_SportsAreUniquePerUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFavoriteRepository()
	for _, name := range []string{"Soccer", "Soccer", "Tennis"} {
		_ = repo.AddSport(ctx, favorite.Sport{UserID: "u-1", Name: name})
	}

	got, _ := repo.ListSports(ctx, "u-1")
	if len(got) != 2 {
		t.Fatalf("expected 2 sports, got %+v", got)
	}
	if empty, _ := repo.ListTeams(ctx, "u-9"); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list for unknown user")
	}
}

func TestFavoriteRepository_SportsIgnoreCase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFavoriteRepository()
	_ = repo.AddSport(ctx, favorite.Sport{UserID: "u-1", Name: "Soccer"})
	_ = repo.AddSport(ctx, favorite.Sport{UserID: "u-1", Name: "soccer"})

	got, _ := repo.ListSports(ctx, "u-1")
	if len(got) != 1 || got[0].Name != "soccer" {
		t.Fatalf("expected one sport carrying the latest casing, got %+v", got)
	}

	if err := repo.RemoveSport(ctx, "u-1", "SOCCER"); err != nil {
		t.Fatalf("remove sport: %v", err)
	}
	if got, _ := repo.ListSports(ctx, "u-1"); len(got) != 0 {
		t.Fatalf("expected sport removed regardless of case, got %+v", got)
	}
}

func TestAccountRepository_RejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAccountRepository()
	if err := repo.Create(ctx, user.Account{ID: "u-1", Email: "nacho@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, user.Account{ID: "u-2", Email: "NACHO@example.com"}); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, ok, _ := repo.GetByEmail(ctx, " Nacho@Example.com"); !ok {
		t.Fatalf("expected lookup to ignore case")
	}
}

func TestSessionRepository_ExpiresWithClock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))
	repo := NewSessionRepository(clock)
	_ = repo.Save(ctx, session.Session{ID: "s-1", TokenHash: "h", UserID: "u-1", ExpiresAt: clock.Now().Add(time.Hour)})

	if _, ok, _ := repo.GetByTokenHash(ctx, "h"); !ok {
		t.Fatalf("expected live session")
	}
	clock.Advance(time.Hour)
	if _, ok, _ := repo.GetByTokenHash(ctx, "h"); ok {
		t.Fatalf("expected expired session to be gone")
	}
}

func TestStorageObjectRepository_LatestByPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStorageObjectRepository()
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	_ = repo.Put(ctx, storage.Object{Bucket: storage.AvatarBucket, Path: "u-1/avatar.png", CreatedAt: base})
	_ = repo.Put(ctx, storage.Object{Bucket: storage.AvatarBucket, Path: "u-1/avatar.webp", CreatedAt: base.Add(time.Minute)})
	_ = repo.Put(ctx, storage.Object{Bucket: storage.AvatarBucket, Path: "u-10/avatar.png", CreatedAt: base.Add(time.Hour)})

	got, ok, err := repo.LatestByPrefix(ctx, storage.AvatarBucket, "u-1/")
	if err != nil || !ok {
		t.Fatalf("latest by prefix: ok=%v err=%v", ok, err)
	}
	if got.Path != "u-1/avatar.webp" {
		t.Fatalf("unexpected latest object %q", got.Path)
	}
}
