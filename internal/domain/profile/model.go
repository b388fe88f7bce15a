package profile

import (
	"strings"
	"time"
)

// Profile is the per-user record created at first sign-in.
type Profile struct {
	UserID                 string
	FullName               string
	FavoriteSport          string
	AvatarURL              string
	HasCompletedOnboarding bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultFullName is the local part of email, or email itself when it has no "@".
func DefaultFullName(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
