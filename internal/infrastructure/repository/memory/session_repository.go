package memory

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/NachoSamo/SamoScore/internal/domain/session"
)

// SessionRepository drops sessions lazily once they expire.
type SessionRepository struct {
	mu    sync.Mutex
	clock clockwork.Clock
	items map[string]session.Session
}

func NewSessionRepository(clock clockwork.Clock) *SessionRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SessionRepository{clock: clock, items: make(map[string]session.Session)}
}

func (r *SessionRepository) Save(_ context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[s.TokenHash] = s
	return nil
}

func (r *SessionRepository) GetByTokenHash(_ context.Context, tokenHash string) (session.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[tokenHash]
	if !ok {
		return session.Session{}, false, nil
	}
	if s.Expired(r.clock.Now()) {
		delete(r.items, tokenHash)
		return session.Session{}, false, nil
	}
	return s, true, nil
}

func (r *SessionRepository) Delete(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, tokenHash)
	return nil
}
