package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"civiconnect-be/models"
	"civiconnect-be/ratelimit"
	"civiconnect-be/session"
	"civiconnect-be/store"
	authUtils "civiconnect-be/utils"

	"github.com/google/uuid"
)

// LocalConfig tunes LocalProvider.
type LocalConfig struct {
	Secret   string
	TokenTTL time.Duration
	// AttemptLimit failed sign-ins per email inside AttemptWindow before
	// further attempts are refused. Zero disables the check.
	AttemptLimit   int64
	AttemptWindow  time.Duration
	SignUpDisabled bool
}

// LocalProvider authenticates against the user store with bcrypt passwords
// and issues JWTs backed by a session store.
type LocalProvider struct {
	users    store.UserStore
	sessions session.Store
	limiter  ratelimit.Limiter
	cfg      LocalConfig
	now      func() time.Time
}

func NewLocalProvider(users store.UserStore, sessions session.Store, limiter ratelimit.Limiter, cfg LocalConfig) *LocalProvider {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = 15 * time.Minute
	}
	return &LocalProvider{users: users, sessions: sessions, limiter: limiter, cfg: cfg, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func attemptKey(email string) string {
	return "signin:" + email
}

func storeError(err error) *Error {
	if errors.Is(err, store.ErrUnavailable) {
		return newError(CodeNetwork, err)
	}
	return newError(CodeUnknown, err)
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, newError(CodeInvalidEmail, nil)
	}

	if p.limiter != nil && p.cfg.AttemptLimit > 0 {
		res, err := p.limiter.Allow(ctx, attemptKey(email), p.cfg.AttemptLimit, p.cfg.AttemptWindow)
		if err != nil {
			// A broken limiter must not lock everyone out.
			log.Printf("Sign-in limiter error for %s: %v", email, err)
		} else if !res.Allowed {
			return nil, newError(CodeTooManyRequests, nil)
		}
	}

	user, err := p.users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(CodeUserNotFound, err)
	}
	if err != nil {
		return nil, storeError(err)
	}
	if user.Disabled {
		return nil, newError(CodeUserDisabled, nil)
	}
	if !user.ComparePassword(password) {
		return nil, newError(CodeWrongPassword, nil)
	}

	if p.limiter != nil && p.cfg.AttemptLimit > 0 {
		if err := p.limiter.Reset(ctx, attemptKey(email)); err != nil {
			log.Printf("Failed to reset sign-in attempts for %s: %v", email, err)
		}
	}
	return p.issue(ctx, user)
}

func (p *LocalProvider) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	if p.cfg.SignUpDisabled {
		return nil, newError(CodeOperationNotAllowed, nil)
	}
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, newError(CodeInvalidEmail, nil)
	}
	if ValidatePassword(password) != nil {
		return nil, newError(CodeWeakPassword, nil)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Email:    email,
		JoinedAt: p.now().UTC().Format("2006-01-02"),
		Password: password,
	}
	if err := user.HashPassword(); err != nil {
		return nil, newError(CodeUnknown, err)
	}

	err := p.users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, newError(CodeEmailInUse, err)
	}
	if err != nil {
		return nil, storeError(err)
	}
	log.Printf("New user registered: %s", user.ID)
	return p.issue(ctx, user)
}

func (p *LocalProvider) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := p.sessions.Delete(ctx, sessionID); err != nil {
		return newError(CodeNetwork, err)
	}
	return nil
}

func (p *LocalProvider) issue(ctx context.Context, user models.User) (*Session, error) {
	user.Password = ""
	id := uuid.NewString()

	token, err := authUtils.GenerateToken(user.ID, id, p.cfg.Secret, p.cfg.TokenTTL)
	if err != nil {
		return nil, newError(CodeUnknown, err)
	}
	if err := p.sessions.Save(ctx, id, user, p.cfg.TokenTTL); err != nil {
		return nil, newError(CodeNetwork, err)
	}
	return &Session{
		ID:        id,
		Token:     token,
		ExpiresAt: p.now().Add(p.cfg.TokenTTL),
		User:      user,
	}, nil
}
