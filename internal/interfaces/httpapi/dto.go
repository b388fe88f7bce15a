package httpapi

import (
	"time"

	"github.com/NachoSamo/SamoScore/internal/domain/favorite"
	"github.com/NachoSamo/SamoScore/internal/domain/league"
	"github.com/NachoSamo/SamoScore/internal/domain/leaguestanding"
	"github.com/NachoSamo/SamoScore/internal/domain/match"
	"github.com/NachoSamo/SamoScore/internal/domain/profile"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	"github.com/NachoSamo/SamoScore/internal/usecase"
)

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type updateProfileRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,max=100"`
	FavoriteSport *string `json:"fav_sport" validate:"omitempty,max=64"`
}

type favoriteLeagueRequest struct {
	LeagueID int    `json:"id_league" validate:"required,gt=0"`
	Name     string `json:"str_league" validate:"required,max=200"`
	Sport    string `json:"str_sport" validate:"omitempty,max=64"`
	Country  string `json:"str_country" validate:"omitempty,max=100"`
	BadgeURL string `json:"badge_url" validate:"omitempty,url"`
}

type favoriteTeamRequest struct {
	TeamID     int    `json:"id_team" validate:"required,gt=0"`
	Name       string `json:"str_team" validate:"required,max=200"`
	LeagueID   *int   `json:"id_league" validate:"omitempty,gt=0"`
	LeagueName string `json:"str_league" validate:"omitempty,max=200"`
	Sport      string `json:"str_sport" validate:"omitempty,max=64"`
	Country    string `json:"str_country" validate:"omitempty,max=100"`
	BadgeURL   string `json:"badge_url" validate:"omitempty,url"`
}

type favoriteSportRequest struct {
	Sport string `json:"str_sport" validate:"required,max=64"`
}

type teamSideDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BadgeURL string `json:"badge_url,omitempty"`
}

type matchDTO struct {
	ID          string      `json:"id"`
	LeagueID    string      `json:"league_id"`
	LeagueName  string      `json:"league_name"`
	LeagueBadge string      `json:"league_badge,omitempty"`
	Sport       string      `json:"sport"`
	HomeTeam    teamSideDTO `json:"home_team"`
	AwayTeam    teamSideDTO `json:"away_team"`
	Status      string      `json:"status"`
	RawStatus   string      `json:"raw_status"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	HomeScore   *int        `json:"home_score"`
	AwayScore   *int        `json:"away_score"`
	Thumb       string      `json:"thumb,omitempty"`
	Video       string      `json:"video,omitempty"`
}

type feedDTO struct {
	Date     string     `json:"date"`
	Sports   []string   `json:"sports"`
	Strategy string     `json:"strategy"`
	Filtered bool       `json:"filtered"`
	Fetched  int        `json:"fetched"`
	Total    int        `json:"total"`
	Live     []matchDTO `json:"live"`
	Upcoming []matchDTO `json:"upcoming"`
	Finished []matchDTO `json:"finished"`
}

type scoreDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type detailSideDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LogoURL   string `json:"logo_url,omitempty"`
}

type timelineEventDTO struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	Type   string `json:"type"`
	Player string `json:"player"`
	Team   string `json:"team"`
}

type matchDetailsDTO struct {
	ID          string             `json:"id"`
	Status      string             `json:"status"`
	RawStatus   string             `json:"raw_status"`
	LeagueID    string             `json:"league_id"`
	LeagueName  string             `json:"league_name"`
	LeagueBadge string             `json:"league_badge,omitempty"`
	Date        string             `json:"date"`
	Time        string             `json:"time"`
	Stadium     string             `json:"stadium,omitempty"`
	City        string             `json:"city,omitempty"`
	HomeTeam    detailSideDTO      `json:"home_team"`
	AwayTeam    detailSideDTO      `json:"away_team"`
	Score       *scoreDTO          `json:"score,omitempty"`
	Events      []timelineEventDTO `json:"events"`
}

type classifyDTO struct {
	Raw                string `json:"raw"`
	Strategy           string `json:"strategy"`
	Status             string `json:"status"`
	LiveForDisplay     bool   `json:"live_for_display"`
	FinishedForDisplay bool   `json:"finished_for_display"`
}

type leagueDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Sport         string `json:"sport"`
	AlternateName string `json:"alternate_name,omitempty"`
	Country       string `json:"country,omitempty"`
	BadgeURL      string `json:"badge_url,omitempty"`
	CurrentSeason string `json:"current_season,omitempty"`
}

type standingDTO struct {
	Rank           int    `json:"rank"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	TeamBadgeURL   string `json:"team_badge_url,omitempty"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type standingsDTO struct {
	League *leagueDTO    `json:"league"`
	Season string        `json:"season"`
	Table  []standingDTO `json:"table"`
}

type profileDTO struct {
	UserID                 string    `json:"user_id"`
	FullName               string    `json:"full_name"`
	FavoriteSport          string    `json:"fav_sport"`
	AvatarURL              string    `json:"avatar_url"`
	HasCompletedOnboarding bool      `json:"has_completed_onboarding"`
	CreatedAt              time.Time `json:"created_at"`
}

type principalDTO struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
}

type authDTO struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        principalDTO `json:"user"`
	Profile     profileDTO   `json:"profile"`
}

type sessionDTO struct {
	User    principalDTO `json:"user"`
	Profile profileDTO   `json:"profile"`
}

type favoriteLeagueDTO struct {
	LeagueID  int       `json:"id_league"`
	Name      string    `json:"str_league"`
	Sport     string    `json:"str_sport,omitempty"`
	Country   string    `json:"str_country,omitempty"`
	BadgeURL  string    `json:"badge_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type favoriteTeamDTO struct {
	TeamID     int       `json:"id_team"`
	Name       string    `json:"str_team"`
	LeagueID   *int      `json:"id_league,omitempty"`
	LeagueName string    `json:"str_league,omitempty"`
	Sport      string    `json:"str_sport,omitempty"`
	Country    string    `json:"str_country,omitempty"`
	BadgeURL   string    `json:"badge_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type favoriteSportDTO struct {
	Sport     string    `json:"str_sport"`
	CreatedAt time.Time `json:"created_at"`
}

type favoritesDTO struct {
	Leagues []favoriteLeagueDTO `json:"leagues"`
	Teams   []favoriteTeamDTO   `json:"teams"`
	Sports  []favoriteSportDTO  `json:"sports"`
}

type favoriteCheckDTO struct {
	Kind       string `json:"kind"`
	ID         string `json:"id"`
	IsFavorite bool   `json:"is_favorite"`
}

func matchToDTO(m match.Match, c *match.Classifier) matchDTO {
	return matchDTO{
		ID:          m.ID,
		LeagueID:    m.LeagueID,
		LeagueName:  m.LeagueName,
		LeagueBadge: m.LeagueBadge,
		Sport:       m.Sport,
		HomeTeam:    teamSideDTO{ID: m.Home.ID, Name: m.Home.Name, BadgeURL: m.Home.BadgeURL},
		AwayTeam:    teamSideDTO{ID: m.Away.ID, Name: m.Away.Name, BadgeURL: m.Away.BadgeURL},
		Status:      string(m.Status(c)),
		RawStatus:   m.RawStatus,
		Date:        m.Date,
		Time:        m.Time,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Thumb:       m.Thumb,
		Video:       m.Video,
	}
}

func matchesToDTO(items []match.Match, c *match.Classifier) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m, c))
	}
	return out
}

func feedToDTO(result usecase.FeedResult, c *match.Classifier) feedDTO {
	return feedDTO{
		Date:     result.Date,
		Sports:   result.Sports,
		Strategy: string(result.Strategy),
		Filtered: result.Filtered,
		Fetched:  result.Fetched,
		Total:    result.Groups.Len(),
		Live:     matchesToDTO(result.Groups.Live, c),
		Upcoming: matchesToDTO(result.Groups.Upcoming, c),
		Finished: matchesToDTO(result.Groups.Finished, c),
	}
}

func detailsToDTO(d match.Details) matchDetailsDTO {
	out := matchDetailsDTO{
		ID:          d.ID,
		Status:      string(d.Status),
		RawStatus:   d.RawStatus,
		LeagueID:    d.LeagueID,
		LeagueName:  d.LeagueName,
		LeagueBadge: d.LeagueBadge,
		Date:        d.Date,
		Time:        d.Time,
		Stadium:     d.Stadium,
		City:        d.City,
		HomeTeam:    detailSideDTO(d.Home),
		AwayTeam:    detailSideDTO(d.Away),
		Events:      make([]timelineEventDTO, 0, len(d.Events)),
	}
	if d.Score != nil {
		out.Score = &scoreDTO{Home: d.Score.Home, Away: d.Score.Away}
	}
	for _, e := range d.Events {
		out.Events = append(out.Events, timelineEventDTO{
			ID:     e.ID,
			Time:   e.Time,
			Type:   string(e.Type),
			Player: e.Player,
			Team:   string(e.Side),
		})
	}
	return out
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:            l.ID,
		Name:          l.Name,
		Sport:         l.Sport,
		AlternateName: l.AlternateName,
		Country:       l.Country,
		BadgeURL:      l.BadgeURL,
		CurrentSeason: l.CurrentSeason,
	}
}

func standingsToDTO(s usecase.Standings) standingsDTO {
	out := standingsDTO{
		Season: s.Season,
		Table:  make([]standingDTO, 0, len(s.Rows)),
	}
	if s.Found {
		l := leagueToDTO(s.League)
		out.League = &l
	}
	for _, row := range s.Rows {
		out.Table = append(out.Table, standingToDTO(row))
	}
	return out
}

func standingToDTO(row leaguestanding.Standing) standingDTO {
	return standingDTO{
		Rank:           row.Rank,
		TeamID:         row.TeamID,
		TeamName:       row.TeamName,
		TeamBadgeURL:   row.TeamBadgeURL,
		Played:         row.Played,
		Won:            row.Won,
		Draw:           row.Draw,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
	}
}

func profileToDTO(p profile.Profile) profileDTO {
	return profileDTO{
		UserID:                 p.UserID,
		FullName:               p.FullName,
		FavoriteSport:          p.FavoriteSport,
		AvatarURL:              p.AvatarURL,
		HasCompletedOnboarding: p.HasCompletedOnboarding,
		CreatedAt:              p.CreatedAt,
	}
}

func principalToDTO(p user.Principal) principalDTO {
	return principalDTO{UserID: p.UserID, Email: p.Email, SessionID: p.SessionID}
}

func authToDTO(result usecase.AuthResult) authDTO {
	return authDTO{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        principalToDTO(result.Principal),
		Profile:     profileToDTO(result.Profile),
	}
}

func favoritesToDTO(s favorite.Snapshot) favoritesDTO {
	out := favoritesDTO{
		Leagues: make([]favoriteLeagueDTO, 0, len(s.Leagues)),
		Teams:   make([]favoriteTeamDTO, 0, len(s.Teams)),
		Sports:  make([]favoriteSportDTO, 0, len(s.Sports)),
	}
	for _, l := range s.Leagues {
		out.Leagues = append(out.Leagues, favoriteLeagueDTO{
			LeagueID:  l.LeagueID,
			Name:      l.Name,
			Sport:     l.Sport,
			Country:   l.Country,
			BadgeURL:  l.BadgeURL,
			CreatedAt: l.CreatedAt,
		})
	}
	for _, t := range s.Teams {
		out.Teams = append(out.Teams, favoriteTeamDTO{
			TeamID:     t.TeamID,
			Name:       t.Name,
			LeagueID:   t.LeagueID,
			LeagueName: t.LeagueName,
			Sport:      t.Sport,
			Country:    t.Country,
			BadgeURL:   t.BadgeURL,
			CreatedAt:  t.CreatedAt,
		})
	}
	for _, sp := range s.Sports {
		out.Sports = append(out.Sports, favoriteSportDTO{Sport: sp.Name, CreatedAt: sp.CreatedAt})
	}
	return out
}
