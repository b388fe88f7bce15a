package usecase

import (
	"context"

	"github.com/NachoSamo/SamoScore/internal/domain/league"
	"github.com/NachoSamo/SamoScore/internal/domain/leaguestanding"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
)

// SportsDataProvider is the read-only sports-data API. Lookups report a
// missing entity with found=false rather than an error.
type SportsDataProvider interface {
	EventsByDay(ctx context.Context, date, sport string) ([]match.Match, error)
	LookupEvent(ctx context.Context, eventID string) (match.EventRecord, bool, error)
	Timeline(ctx context.Context, eventID string) ([]match.TimelineEntry, error)
	LeagueTable(ctx context.Context, leagueID, season string) ([]leaguestanding.Standing, error)
	LookupLeague(ctx context.Context, leagueID string) (league.League, bool, error)
	AllLeagues(ctx context.Context) ([]league.League, error)
}

// FavoritesObserver receives favorites cache outcomes for metrics.
type FavoritesObserver interface {
	ObserveFavoriteMutation(kind, op, outcome string)
	ObserveFavoriteRefresh(outcome string)
}

type noopFavoritesObserver struct{}

func (noopFavoritesObserver) ObserveFavoriteMutation(string, string, string) {}
func (noopFavoritesObserver) ObserveFavoriteRefresh(string)                 {}
