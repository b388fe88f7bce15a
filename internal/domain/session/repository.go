package session

import "context"

type Repository interface {
	Save(ctx context.Context, s Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (Session, bool, error)
	Delete(ctx context.Context, tokenHash string) error
}
