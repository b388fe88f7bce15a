// Package staleguard keeps only the newest request per key alive.
package staleguard

import (
	"context"
	"sync"
)

// Guard hands out tickets per key. Starting a new ticket for a key cancels
// the context of the previous one, so a slow older request can never
// overwrite the result of a newer one.
type Guard struct {
	mu      sync.Mutex
	current map[string]*Ticket
	seq     uint64
}

type Ticket struct {
	guard  *Guard
	key    string
	gen    uint64
	cancel context.CancelCauseFunc
}

func New() *Guard {
	return &Guard{current: make(map[string]*Ticket)}
}

// Begin supersedes any in-flight ticket for key. An empty key never
// supersedes anything.
func (g *Guard) Begin(ctx context.Context, key string) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancelCause(ctx)

	g.mu.Lock()
	g.seq++
	ticket := &Ticket{guard: g, key: key, gen: g.seq, cancel: cancel}
	var previous *Ticket
	if key != "" {
		previous = g.current[key]
		g.current[key] = ticket
	}
	g.mu.Unlock()

	if previous != nil {
		previous.cancel(ErrSuperseded)
	}
	return ctx, ticket
}

// Current reports whether no newer ticket has started for the same key.
func (t *Ticket) Current() bool {
	if t == nil || t.key == "" {
		return true
	}
	t.guard.mu.Lock()
	defer t.guard.mu.Unlock()
	cur, ok := t.guard.current[t.key]
	return !ok || cur.gen <= t.gen
}

// Done releases the ticket and its context.
func (t *Ticket) Done() {
	if t == nil {
		return
	}
	if t.key != "" {
		t.guard.mu.Lock()
		if cur, ok := t.guard.current[t.key]; ok && cur == t {
			delete(t.guard.current, t.key)
		}
		t.guard.mu.Unlock()
	}
	t.cancel(nil)
}

// Superseded reports whether ctx was cancelled by a newer ticket.
func Superseded(ctx context.Context) bool {
	return context.Cause(ctx) == ErrSuperseded
}
