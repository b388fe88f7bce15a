package postgres

import (
	"database/sql"
	"time"
)

type favoriteLeagueTableModel struct {
	ID         int64          `db:"id"`
	UserID     string         `db:"user_id"`
	LeagueID   int            `db:"id_league"`
	LeagueName string         `db:"str_league"`
	Sport      sql.NullString `db:"str_sport"`
	Country    sql.NullString `db:"str_country"`
	BadgeURL   sql.NullString `db:"badge_url"`
	CreatedAt  time.Time      `db:"created_at"`
}

type favoriteLeagueInsertModel struct {
	UserID     string  `db:"user_id"`
	LeagueID   int     `db:"id_league"`
	LeagueName string  `db:"str_league"`
	Sport      *string `db:"str_sport"`
	Country    *string `db:"str_country"`
	BadgeURL   *string `db:"badge_url"`
}

type favoriteTeamTableModel struct {
	ID         int64          `db:"id"`
	UserID     string         `db:"user_id"`
	TeamID     int            `db:"id_team"`
	TeamName   string         `db:"str_team"`
	LeagueID   sql.NullInt32  `db:"id_league"`
	LeagueName sql.NullString `db:"str_league"`
	Sport      sql.NullString `db:"str_sport"`
	Country    sql.NullString `db:"str_country"`
	BadgeURL   sql.NullString `db:"badge_url"`
	CreatedAt  time.Time      `db:"created_at"`
}

type favoriteTeamInsertModel struct {
	UserID     string  `db:"user_id"`
	TeamID     int     `db:"id_team"`
	TeamName   string  `db:"str_team"`
	LeagueID   *int    `db:"id_league"`
	LeagueName *string `db:"str_league"`
	Sport      *string `db:"str_sport"`
	Country    *string `db:"str_country"`
	BadgeURL   *string `db:"badge_url"`
}

type favoriteSportTableModel struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Sport     string    `db:"str_sport"`
	CreatedAt time.Time `db:"created_at"`
}

type favoriteSportInsertModel struct {
	UserID string `db:"user_id"`
	Sport  string `db:"str_sport"`
}
