package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/NachoSamo/SamoScore/internal/domain/league"
	"github.com/NachoSamo/SamoScore/internal/domain/leaguestanding"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

type LeagueService struct {
	provider      SportsDataProvider
	defaultSeason string
	logger        *logging.Logger
}

type Standings struct {
	League league.League
	Found  bool
	Season string
	Rows   []leaguestanding.Standing
}

func NewLeagueService(provider SportsDataProvider, defaultSeason string, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		provider:      provider,
		defaultSeason: strings.TrimSpace(defaultSeason),
		logger:        logger,
	}
}

// All lists every league, optionally narrowed to one sport. A provider
// failure yields an empty list.
func (s *LeagueService) All(ctx context.Context, sport string) []league.League {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.All")
	defer span.End()

	items, err := s.provider.AllLeagues(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list leagues failed", "error", err)
		return []league.League{}
	}

	sport = strings.TrimSpace(sport)
	if sport == "" {
		return items
	}
	out := make([]league.League, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Sport, sport) {
			out = append(out, item)
		}
	}
	return out
}

func (s *LeagueService) Get(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Get")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, ok, err := s.provider.LookupLeague(ctx, leagueID)
	if err != nil {
		s.logger.WarnContext(ctx, "lookup league failed", "league_id", leagueID, "error", err)
	}
	if err != nil || !ok {
		return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}
	return item, nil
}

// Standings loads league details and the table in parallel. Either part
// degrades to empty on failure.
func (s *LeagueService) Standings(ctx context.Context, leagueID, season string) (Standings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Standings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return Standings{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	season = strings.TrimSpace(season)
	if season == "" {
		season = s.defaultSeason
	}

	out := Standings{Season: season, Rows: []leaguestanding.Standing{}}
	var wg conc.WaitGroup
	wg.Go(func() {
		item, ok, err := s.provider.LookupLeague(ctx, leagueID)
		if err != nil {
			s.logger.WarnContext(ctx, "lookup league failed", "league_id", leagueID, "error", err)
			return
		}
		out.League, out.Found = item, ok
	})
	wg.Go(func() {
		rows, err := s.provider.LeagueTable(ctx, leagueID, season)
		if err != nil {
			s.logger.WarnContext(ctx, "lookup league table failed", "league_id", leagueID, "season", season, "error", err)
			return
		}
		out.Rows = rows
	})
	wg.Wait()

	return out, nil
}
