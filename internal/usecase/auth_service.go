package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/NachoSamo/SamoScore/internal/domain/profile"
	"github.com/NachoSamo/SamoScore/internal/domain/session"
	"github.com/NachoSamo/SamoScore/internal/domain/user"
	"github.com/NachoSamo/SamoScore/internal/platform/id"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

const minPasswordLength = 6

// SessionListener is told about sign-in and sign-out.
type SessionListener interface {
	HandleSessionEvent(ctx context.Context, event session.Event)
}

type SessionListenerFunc func(ctx context.Context, event session.Event)

func (f SessionListenerFunc) HandleSessionEvent(ctx context.Context, event session.Event) {
	f(ctx, event)
}

type AuthServiceConfig struct {
	SessionTTL time.Duration
	BcryptCost int
	UserIDs    id.Generator
	SessionIDs id.Generator
	Tokens     id.Generator
	Clock      clockwork.Clock
	Logger     *logging.Logger
}

type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Principal   user.Principal
	Profile     profile.Profile
}

// AuthService issues opaque bearer tokens backed by stored sessions.
type AuthService struct {
	users    user.Repository
	sessions session.Repository
	profiles *ProfileService
	cfg      AuthServiceConfig
	logger   *logging.Logger

	mu        sync.RWMutex
	listeners []SessionListener
}

func NewAuthService(users user.Repository, sessions session.Repository, profiles *ProfileService, cfg AuthServiceConfig) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 7 * 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.UserIDs == nil {
		cfg.UserIDs = id.NewUUIDGenerator()
	}
	if cfg.SessionIDs == nil {
		cfg.SessionIDs = id.NewUUIDGenerator()
	}
	if cfg.Tokens == nil {
		cfg.Tokens = id.NewTokenGenerator(32)
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	return &AuthService{
		users:    users,
		sessions: sessions,
		profiles: profiles,
		cfg:      cfg,
		logger:   cfg.Logger.Named("auth"),
	}
}

// Subscribe registers l for session events. Listeners run synchronously in
// registration order.
func (s *AuthService) Subscribe(l SessionListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignUp")
	defer span.End()

	email, err := user.NormalizeEmail(email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(password) < minPasswordLength {
		return AuthResult{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, exists, err := s.users.GetByEmail(ctx, email); err != nil {
		return AuthResult{}, fmt.Errorf("get account: %w", err)
	} else if exists {
		return AuthResult{}, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := s.cfg.UserIDs.NewID()
	if err != nil {
		return AuthResult{}, err
	}

	account := user.Account{
		ID:           userID,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.cfg.Clock.Now().UTC(),
	}
	if err := s.users.Create(ctx, account); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return AuthResult{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return AuthResult{}, fmt.Errorf("create account: %w", err)
	}

	return s.openSession(ctx, account)
}

// SignIn reports every credential mismatch as ErrUnauthorized.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignIn")
	defer span.End()

	email, err := user.NormalizeEmail(email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	account, ok, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("get account: %w", err)
	}
	if !ok {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return s.openSession(ctx, account)
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignOut")
	defer span.End()

	hash := HashToken(token)
	current, ok, err := s.sessions.GetByTokenHash(ctx, hash)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: session not found", ErrUnauthorized)
	}
	if err := s.sessions.Delete(ctx, hash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.publish(ctx, session.Event{Type: session.EventSignedOut, Session: current})
	return nil
}

func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", ErrUnauthorized)
	}

	current, ok, err := s.sessions.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: get session: %v", ErrDependencyUnavailable, err)
	}
	if !ok || current.Expired(s.cfg.Clock.Now()) {
		return user.Principal{}, fmt.Errorf("%w: session expired or revoked", ErrUnauthorized)
	}

	return user.Principal{UserID: current.UserID, Email: current.Email, SessionID: current.ID}, nil
}

func (s *AuthService) openSession(ctx context.Context, account user.Account) (AuthResult, error) {
	prof, err := s.profiles.EnsureExists(ctx, account.ID, account.Email)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.cfg.Tokens.NewID()
	if err != nil {
		return AuthResult{}, err
	}
	sessionID, err := s.cfg.SessionIDs.NewID()
	if err != nil {
		return AuthResult{}, err
	}

	now := s.cfg.Clock.Now().UTC()
	current := session.Session{
		ID:        sessionID,
		TokenHash: HashToken(token),
		UserID:    account.ID,
		Email:     account.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Save(ctx, current); err != nil {
		return AuthResult{}, fmt.Errorf("save session: %w", err)
	}

	s.publish(ctx, session.Event{Type: session.EventSignedIn, Session: current})

	return AuthResult{
		AccessToken: token,
		ExpiresAt:   current.ExpiresAt,
		Principal:   user.Principal{UserID: account.ID, Email: account.Email, SessionID: sessionID},
		Profile:     prof,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, event session.Event) {
	s.mu.RLock()
	listeners := append([]SessionListener(nil), s.listeners...)
	s.mu.RUnlock()

	for _, l := range listeners {
		l.HandleSessionEvent(ctx, event)
	}
}

// HashToken is the storage key of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}
