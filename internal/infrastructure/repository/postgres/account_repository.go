package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/NachoSamo/SamoScore/internal/domain/user"
	qb "github.com/NachoSamo/SamoScore/internal/platform/querybuilder"
)

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (user.Account, bool, error) {
	return r.getOne(ctx, qb.Expr("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))))
}

func (r *AccountRepository) GetByID(ctx context.Context, userID string) (user.Account, bool, error) {
	return r.getOne(ctx, qb.Eq("id", userID))
}

func (r *AccountRepository) Create(ctx context.Context, account user.Account) error {
	query, args, err := qb.InsertModel("user_accounts", accountTableModel{
		ID:           account.ID,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert account query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) getOne(ctx context.Context, condition qb.Condition) (user.Account, bool, error) {
	query, args, err := qb.Select("*").From("user_accounts").
		Where(condition).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.Account{}, false, fmt.Errorf("build get account query: %w", err)
	}

	var row accountTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Account{}, false, nil
		}
		return user.Account{}, false, fmt.Errorf("get account: %w", err)
	}

	return user.Account{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}, true, nil
}
