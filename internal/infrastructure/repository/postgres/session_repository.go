package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/NachoSamo/SamoScore/internal/domain/session"
	qb "github.com/NachoSamo/SamoScore/internal/platform/querybuilder"
)

// SessionRepository keeps sessions in user_sessions. Expired rows are
// filtered on read and removed by DeleteExpired.
type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(ctx context.Context, s session.Session) error {
	query, args, err := qb.UpsertModel("user_sessions", sessionTableModel{
		TokenHash: s.TokenHash,
		ID:        s.ID,
		UserID:    s.UserID,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}, []string{"token_hash"})
	if err != nil {
		return fmt.Errorf("build upsert session query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (session.Session, bool, error) {
	query, args, err := qb.Select("*").From("user_sessions").
		Where(
			qb.Eq("token_hash", tokenHash),
			qb.Expr("expires_at > NOW()"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return session.Session{}, false, fmt.Errorf("build get session query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	return session.Session{
		ID:        row.ID,
		TokenHash: row.TokenHash,
		UserID:    row.UserID,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	query, args, err := qb.DeleteFrom("user_sessions").Where(qb.Eq("token_hash", tokenHash)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired purges sessions past their expiry and reports how many.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query, args, err := qb.DeleteFrom("user_sessions").Where(qb.Expr("expires_at <= NOW()")).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete expired sessions query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
