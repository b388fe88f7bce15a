package memory

import (
	"context"
	"sync"
	"time"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
)

type userFavorites struct {
	leagues []favorite.League
	teams   []favorite.Team
	sports  []favorite.Sport
}

// FavoriteRepository mirrors the Postgres favorites tables: rows are unique
// per (user, entity) and list in insertion order.
type FavoriteRepository struct {
	mu     sync.RWMutex
	seq    int64
	byUser map[string]*userFavorites
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{byUser: make(map[string]*userFavorites)}
}

func (r *FavoriteRepository) ListLeagues(_ context.Context, userID string) ([]favorite.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.byUser[userID]; ok {
		return append([]favorite.League(nil), u.leagues...), nil
	}
	return []favorite.League{}, nil
}

func (r *FavoriteRepository) ListTeams(_ context.Context, userID string) ([]favorite.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.byUser[userID]; ok {
		return append([]favorite.Team(nil), u.teams...), nil
	}
	return []favorite.Team{}, nil
}

func (r *FavoriteRepository) ListSports(_ context.Context, userID string) ([]favorite.Sport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.byUser[userID]; ok {
		return append([]favorite.Sport(nil), u.sports...), nil
	}
	return []favorite.Sport{}, nil
}

func (r *FavoriteRepository) AddLeague(_ context.Context, item favorite.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.userLocked(item.UserID)
	for i := range u.leagues {
		if u.leagues[i].LeagueID == item.LeagueID {
			item.ID, item.CreatedAt = u.leagues[i].ID, u.leagues[i].CreatedAt
			u.leagues[i] = item
			return nil
		}
	}
	item.ID, item.CreatedAt = r.nextLocked(item.CreatedAt)
	u.leagues = append(u.leagues, item)
	return nil
}

func (r *FavoriteRepository) AddTeam(_ context.Context, item favorite.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.userLocked(item.UserID)
	for i := range u.teams {
		if u.teams[i].TeamID == item.TeamID {
			item.ID, item.CreatedAt = u.teams[i].ID, u.teams[i].CreatedAt
			u.teams[i] = item
			return nil
		}
	}
	item.ID, item.CreatedAt = r.nextLocked(item.CreatedAt)
	u.teams = append(u.teams, item)
	return nil
}

func (r *FavoriteRepository) AddSport(_ context.Context, item favorite.Sport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.userLocked(item.UserID)
	for i, existing := range u.sports {
		if existing.Key() == item.Key() {
			u.sports[i].Name = item.Name
			return nil
		}
	}
	item.ID, item.CreatedAt = r.nextLocked(item.CreatedAt)
	u.sports = append(u.sports, item)
	return nil
}

func (r *FavoriteRepository) RemoveLeague(_ context.Context, userID string, leagueID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byUser[userID]; ok {
		u.leagues = removeWhere(u.leagues, func(l favorite.League) bool { return l.LeagueID == leagueID })
	}
	return nil
}

func (r *FavoriteRepository) RemoveTeam(_ context.Context, userID string, teamID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byUser[userID]; ok {
		u.teams = removeWhere(u.teams, func(t favorite.Team) bool { return t.TeamID == teamID })
	}
	return nil
}

func (r *FavoriteRepository) RemoveSport(_ context.Context, userID, sport string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byUser[userID]; ok {
		u.sports = removeWhere(u.sports, func(s favorite.Sport) bool { return s.Key() == favorite.SportKey(sport) })
	}
	return nil
}

func (r *FavoriteRepository) userLocked(userID string) *userFavorites {
	u, ok := r.byUser[userID]
	if !ok {
		u = &userFavorites{}
		r.byUser[userID] = u
	}
	return u
}

func (r *FavoriteRepository) nextLocked(createdAt time.Time) (int64, time.Time) {
	r.seq++
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return r.seq, createdAt
}

func removeWhere[T any](items []T, match func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}
