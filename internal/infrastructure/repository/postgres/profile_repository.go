package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NachoSamo/SamoScore/internal/domain/profile"
	qb "github.com/NachoSamo/SamoScore/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("user_profiles").
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return profile.Profile{
		UserID:                 row.UserID,
		FullName:               nullStringValue(row.FullName),
		FavoriteSport:          nullStringValue(row.FavoriteSport),
		AvatarURL:              nullStringValue(row.AvatarURL),
		HasCompletedOnboarding: row.HasCompletedOnboarding,
		CreatedAt:              row.CreatedAt,
		UpdatedAt:              row.UpdatedAt,
	}, true, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) error {
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query, args, err := qb.UpsertModel("user_profiles", profileUpsertModel{
		UserID:                 strings.TrimSpace(item.UserID),
		FullName:               optionalString(item.FullName),
		FavoriteSport:          optionalString(item.FavoriteSport),
		AvatarURL:              optionalString(item.AvatarURL),
		HasCompletedOnboarding: item.HasCompletedOnboarding,
		UpdatedAt:              updatedAt,
	}, []string{"user_id"})
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
