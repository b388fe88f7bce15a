package session

import "time"

// Session is an issued access token. Only the token hash is stored.
type Session struct {
	ID        string
	TokenHash string
	UserID    string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Event is a session lifecycle notification.
type Event struct {
	Type    EventType
	Session Session
}

type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)
