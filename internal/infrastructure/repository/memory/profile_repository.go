package memory

import (
	"context"
	"sync"

	"github.com/NachoSamo/SamoScore/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: make(map[string]profile.Profile)}
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	return p, ok, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[p.UserID]; ok && !existing.CreatedAt.IsZero() {
		p.CreatedAt = existing.CreatedAt
	}
	r.items[p.UserID] = p
	return nil
}
