package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
	qb "github.com/NachoSamo/SamoScore/internal/platform/querybuilder"
)

const (
	favoriteLeaguesTable = "user_favorite_leagues"
	favoriteTeamsTable   = "user_favorite_teams"
	favoriteSportsTable  = "user_favorite_sports"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) ListLeagues(ctx context.Context, userID string) ([]favorite.League, error) {
	query, args, err := qb.Select("*").From(favoriteLeaguesTable).
		Where(qb.Eq("user_id", userID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select favorite leagues query: %w", err)
	}

	var rows []favoriteLeagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select favorite leagues: %w", err)
	}

	out := make([]favorite.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, favorite.League{
			ID:        row.ID,
			UserID:    row.UserID,
			LeagueID:  row.LeagueID,
			Name:      row.LeagueName,
			Sport:     nullStringValue(row.Sport),
			Country:   nullStringValue(row.Country),
			BadgeURL:  nullStringValue(row.BadgeURL),
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *FavoriteRepository) ListTeams(ctx context.Context, userID string) ([]favorite.Team, error) {
	query, args, err := qb.Select("*").From(favoriteTeamsTable).
		Where(qb.Eq("user_id", userID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select favorite teams query: %w", err)
	}

	var rows []favoriteTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select favorite teams: %w", err)
	}

	out := make([]favorite.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, favorite.Team{
			ID:         row.ID,
			UserID:     row.UserID,
			TeamID:     row.TeamID,
			Name:       row.TeamName,
			LeagueID:   nullInt32Ptr(row.LeagueID),
			LeagueName: nullStringValue(row.LeagueName),
			Sport:      nullStringValue(row.Sport),
			Country:    nullStringValue(row.Country),
			BadgeURL:   nullStringValue(row.BadgeURL),
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

func (r *FavoriteRepository) ListSports(ctx context.Context, userID string) ([]favorite.Sport, error) {
	query, args, err := qb.Select("*").From(favoriteSportsTable).
		Where(qb.Eq("user_id", userID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select favorite sports query: %w", err)
	}

	var rows []favoriteSportTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select favorite sports: %w", err)
	}

	out := make([]favorite.Sport, 0, len(rows))
	for _, row := range rows {
		out = append(out, favorite.Sport{
			ID:        row.ID,
			UserID:    row.UserID,
			Name:      row.Sport,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *FavoriteRepository) AddLeague(ctx context.Context, item favorite.League) error {
	query, args, err := qb.UpsertModel(favoriteLeaguesTable, favoriteLeagueInsertModel{
		UserID:     item.UserID,
		LeagueID:   item.LeagueID,
		LeagueName: strings.TrimSpace(item.Name),
		Sport:      optionalString(item.Sport),
		Country:    optionalString(item.Country),
		BadgeURL:   optionalString(item.BadgeURL),
	}, []string{"user_id", "id_league"})
	if err != nil {
		return fmt.Errorf("build upsert favorite league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert favorite league: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) AddTeam(ctx context.Context, item favorite.Team) error {
	query, args, err := qb.UpsertModel(favoriteTeamsTable, favoriteTeamInsertModel{
		UserID:     item.UserID,
		TeamID:     item.TeamID,
		TeamName:   strings.TrimSpace(item.Name),
		LeagueID:   item.LeagueID,
		LeagueName: optionalString(item.LeagueName),
		Sport:      optionalString(item.Sport),
		Country:    optionalString(item.Country),
		BadgeURL:   optionalString(item.BadgeURL),
	}, []string{"user_id", "id_team"})
	if err != nil {
		return fmt.Errorf("build upsert favorite team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert favorite team: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) AddSport(ctx context.Context, item favorite.Sport) error {
	query, args, err := qb.UpsertModel(favoriteSportsTable, favoriteSportInsertModel{
		UserID: item.UserID,
		Sport:  favorite.SportName(item.Name),
	}, []string{"user_id", "lower(str_sport)"})
	if err != nil {
		return fmt.Errorf("build upsert favorite sport query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert favorite sport: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) RemoveLeague(ctx context.Context, userID string, leagueID int) error {
	return r.delete(ctx, favoriteLeaguesTable, "favorite league", qb.Eq("user_id", userID), qb.Eq("id_league", leagueID))
}

func (r *FavoriteRepository) RemoveTeam(ctx context.Context, userID string, teamID int) error {
	return r.delete(ctx, favoriteTeamsTable, "favorite team", qb.Eq("user_id", userID), qb.Eq("id_team", teamID))
}

func (r *FavoriteRepository) RemoveSport(ctx context.Context, userID, sport string) error {
	return r.delete(ctx, favoriteSportsTable, "favorite sport", qb.Eq("user_id", userID), qb.Expr("lower(str_sport) = lower(?)", favorite.SportName(sport)))
}

func (r *FavoriteRepository) delete(ctx context.Context, table, label string, conditions ...qb.Condition) error {
	query, args, err := qb.DeleteFrom(table).Where(conditions...).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", label, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", label, err)
	}
	return nil
}
