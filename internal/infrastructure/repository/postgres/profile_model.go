package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	UserID                 string         `db:"user_id"`
	FullName               sql.NullString `db:"full_name"`
	FavoriteSport          sql.NullString `db:"fav_sport"`
	AvatarURL              sql.NullString `db:"avatar_url"`
	HasCompletedOnboarding bool           `db:"has_completed_onboarding"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
}

type profileUpsertModel struct {
	UserID                 string    `db:"user_id"`
	FullName               *string   `db:"full_name"`
	FavoriteSport          *string   `db:"fav_sport"`
	AvatarURL              *string   `db:"avatar_url"`
	HasCompletedOnboarding bool      `db:"has_completed_onboarding"`
	UpdatedAt              time.Time `db:"updated_at"`
}
