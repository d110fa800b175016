package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"civiconnect-be/models"
	"civiconnect-be/ratelimit"
	"civiconnect-be/session"
	"civiconnect-be/store"
	authUtils "civiconnect-be/utils"
)

func newTestProvider(t *testing.T, cfg LocalConfig) (*LocalProvider, *store.MemoryStore, *session.MemoryStore) {
	t.Helper()
	users, err := store.NewMemoryStore(store.DefaultFixtures())
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	sessions := session.NewMemoryStore()
	if cfg.Secret == "" {
		cfg.Secret = "test-secret"
	}
	return NewLocalProvider(users, sessions, ratelimit.NewMemoryLimiter(), cfg), users, sessions
}

func TestLocalSignIn(t *testing.T) {
	ctx := context.Background()
	p, _, sessions := newTestProvider(t, LocalConfig{})

	sess, err := p.SignIn(ctx, " Sarah@Example.com ", "civiconnect")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sess.User.ID != "1" || sess.User.Password != "" {
		t.Errorf("session user = %+v", sess.User)
	}

	userID, sessionID, err := authUtils.ParseToken(sess.Token, "test-secret")
	if err != nil || userID != "1" || sessionID != sess.ID {
		t.Errorf("ParseToken = %q, %q, %v", userID, sessionID, err)
	}
	if _, err := sessions.Load(ctx, sess.ID); err != nil {
		t.Errorf("session not stored: %v", err)
	}
}

func TestLocalSignInFailures(t *testing.T) {
	ctx := context.Background()
	p, users, _ := newTestProvider(t, LocalConfig{})

	disabled := models.User{ID: "d", Email: "gone@example.com", Password: "secret1", Disabled: true}
	disabled.HashPassword()
	users.CreateUser(ctx, disabled)

	tests := []struct {
		email, password string
		want            Code
	}{
		{"not-an-email", "x", CodeInvalidEmail},
		{"nobody@example.com", "civiconnect", CodeUserNotFound},
		{"sarah@example.com", "wrong", CodeWrongPassword},
		{"gone@example.com", "secret1", CodeUserDisabled},
	}
	for _, tt := range tests {
		_, err := p.SignIn(ctx, tt.email, tt.password)
		if got := CodeOf(err); got != tt.want {
			t.Errorf("SignIn(%q) code = %q, want %q (err %v)", tt.email, got, tt.want, err)
		}
	}
}

func TestLocalSignInAttemptLimit(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestProvider(t, LocalConfig{AttemptLimit: 3})

	for i := 0; i < 3; i++ {
		if _, err := p.SignIn(ctx, "sarah@example.com", "wrong"); CodeOf(err) != CodeWrongPassword {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	_, err := p.SignIn(ctx, "sarah@example.com", "civiconnect")
	if CodeOf(err) != CodeTooManyRequests {
		t.Errorf("fourth attempt code = %q, want %q", CodeOf(err), CodeTooManyRequests)
	}
}

func TestLocalSignInResetsAttemptsOnSuccess(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestProvider(t, LocalConfig{AttemptLimit: 2})

	p.SignIn(ctx, "sarah@example.com", "wrong")
	if _, err := p.SignIn(ctx, "sarah@example.com", "civiconnect"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if _, err := p.SignIn(ctx, "sarah@example.com", "wrong"); CodeOf(err) != CodeWrongPassword {
		t.Errorf("attempt after success code = %q, want %q", CodeOf(err), CodeWrongPassword)
	}
}

func TestLocalSignUp(t *testing.T) {
	ctx := context.Background()
	p, users, _ := newTestProvider(t, LocalConfig{})

	sess, err := p.SignUp(ctx, " Ada Lovelace ", "Ada@Example.com", "engine1")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if sess.User.Name != "Ada Lovelace" || sess.User.Email != "ada@example.com" || sess.User.JoinedAt == "" {
		t.Errorf("new user = %+v", sess.User)
	}
	stored, err := users.FindUserByEmail(ctx, "ada@example.com")
	if err != nil || !stored.ComparePassword("engine1") {
		t.Errorf("stored user = %+v, %v", stored, err)
	}

	tests := []struct {
		email, password string
		want            Code
	}{
		{"sarah@example.com", "whatever1", CodeEmailInUse},
		{"new@example.com", "123", CodeWeakPassword},
		{"bad-email", "secret1", CodeInvalidEmail},
	}
	for _, tt := range tests {
		_, err := p.SignUp(ctx, "X", tt.email, tt.password)
		if got := CodeOf(err); got != tt.want {
			t.Errorf("SignUp(%q) code = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestLocalSignUpLongPasswords(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newTestProvider(t, LocalConfig{})

	tests := []struct {
		email, password string
	}{
		{"long@example.com", strings.Repeat("a", 100)},
		{"max@example.com", strings.Repeat("b", 128)},
		{"cyrillic@example.com", strings.Repeat("пароль", 20)},
	}
	for _, tt := range tests {
		if err := ValidatePassword(tt.password); err != nil {
			t.Fatalf("ValidatePassword(%d runes): %v", len([]rune(tt.password)), err)
		}
		if _, err := p.SignUp(ctx, "Long", tt.email, tt.password); err != nil {
			t.Errorf("SignUp(%s): %v", tt.email, err)
			continue
		}
		if _, err := p.SignIn(ctx, tt.email, tt.password); err != nil {
			t.Errorf("SignIn(%s): %v", tt.email, err)
		}
	}
}

func TestLocalSignUpDisabled(t *testing.T) {
	p, _, _ := newTestProvider(t, LocalConfig{SignUpDisabled: true})
	_, err := p.SignUp(context.Background(), "X", "x@example.com", "secret1")
	if CodeOf(err) != CodeOperationNotAllowed {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeOperationNotAllowed)
	}
}

func TestLocalSignOut(t *testing.T) {
	ctx := context.Background()
	p, _, sessions := newTestProvider(t, LocalConfig{})

	sess, _ := p.SignIn(ctx, "sarah@example.com", "civiconnect")
	if err := p.SignOut(ctx, sess.ID); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := sessions.Load(ctx, sess.ID); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Load after SignOut err = %v, want ErrNotFound", err)
	}
}

type downUserStore struct{ store.UserStore }

func (downUserStore) FindUserByEmail(context.Context, string) (models.User, error) {
	return models.User{}, fmt.Errorf("%w: server selection timeout", store.ErrUnavailable)
}

func TestLocalSignInUnavailableStore(t *testing.T) {
	p := NewLocalProvider(downUserStore{}, session.NewMemoryStore(), nil, LocalConfig{Secret: "s"})
	_, err := p.SignIn(context.Background(), "sarah@example.com", "civiconnect")
	if CodeOf(err) != CodeNetwork {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeNetwork)
	}
}
