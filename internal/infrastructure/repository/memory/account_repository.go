package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/NachoSamo/SamoScore/internal/domain/user"
)

type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]user.Account
	byEmail map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[string]user.Account),
		byEmail: make(map[string]string),
	}
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (user.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return user.Account{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *AccountRepository) GetByID(_ context.Context, userID string) (user.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[userID]
	return a, ok, nil
}

func (r *AccountRepository) Create(_ context.Context, account user.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(account.Email)
	if _, taken := r.byEmail[key]; taken {
		return user.ErrEmailTaken
	}
	r.byID[account.ID] = account
	r.byEmail[key] = account.ID
	return nil
}
