package favorite

import "context"

// Repository is the remote store of favorites, scoped by user id.
// Adds are upserts on (user, entity) so retries never duplicate rows.
type Repository interface {
	ListLeagues(ctx context.Context, userID string) ([]League, error)
	ListTeams(ctx context.Context, userID string) ([]Team, error)
	ListSports(ctx context.Context, userID string) ([]Sport, error)

	AddLeague(ctx context.Context, item League) error
	AddTeam(ctx context.Context, item Team) error
	AddSport(ctx context.Context, item Sport) error

	RemoveLeague(ctx context.Context, userID string, leagueID int) error
	RemoveTeam(ctx context.Context, userID string, teamID int) error
	RemoveSport(ctx context.Context, userID, sport string) error
}
