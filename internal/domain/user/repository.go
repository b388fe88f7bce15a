package user

import "context"

type Repository interface {
	GetByEmail(ctx context.Context, email string) (Account, bool, error)
	GetByID(ctx context.Context, userID string) (Account, bool, error)
	// Create fails with ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, account Account) error
}
