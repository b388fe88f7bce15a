package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    string
	Email     string
	SessionID string
}

// Account is a locally registered credential.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("email %q is invalid", email)
	}
	return email, nil
}
