package leaguestanding

// Standing represents a league table row for one team.
type Standing struct {
	ID             string
	LeagueID       string
	LeagueName     string
	Season         string
	TeamID         string
	TeamName       string
	TeamBadgeURL   string
	Rank           int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}
