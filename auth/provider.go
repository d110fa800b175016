package auth

//go:generate mockgen -source=provider.go -destination=mock_provider_test.go -package=auth

import (
	"context"
	"time"

	"civiconnect-be/models"
)

// Session is an authenticated sign-in.
type Session struct {
	ID        string      `json:"sessionId"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

// Provider is the identity provider. Failures are *Error values.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, name, email, password string) (*Session, error)
	SignOut(ctx context.Context, sessionID string) error
}
