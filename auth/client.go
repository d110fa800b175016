package auth

import (
	"context"
	"log"

	"civiconnect-be/session"
)

// Client validates forms before anything reaches the provider and turns
// provider failures into fixed messages. Successful calls update the
// caller's session context.
type Client struct {
	provider  Provider
	validator *Validator
}

func NewClient(p Provider) *Client {
	return &Client{provider: p, validator: NewValidator()}
}

// Login returns a *ValidationError when the form is rejected locally, or a
// *Failure when the provider refuses the credentials.
func (c *Client) Login(ctx context.Context, sc *session.Context, form LoginForm) (*Session, error) {
	form.Email = normalizeEmail(form.Email)
	if err := c.validator.Struct(form); err != nil {
		return nil, err
	}
	sess, err := c.provider.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		return nil, c.failure("sign in", err)
	}
	sc.Login(sess.User, sess.ID)
	return sess, nil
}

func (c *Client) SignUp(ctx context.Context, sc *session.Context, form SignUpForm) (*Session, error) {
	form.Email = normalizeEmail(form.Email)
	if err := c.validator.Struct(form); err != nil {
		return nil, err
	}
	sess, err := c.provider.SignUp(ctx, form.Name, form.Email, form.Password)
	if err != nil {
		return nil, c.failure("sign up", err)
	}
	sc.Login(sess.User, sess.ID)
	return sess, nil
}

// Logout ends the provider session. On failure the context stays signed in.
func (c *Client) Logout(ctx context.Context, sc *session.Context) error {
	if err := c.provider.SignOut(ctx, sc.SessionID()); err != nil {
		log.Printf("Sign out failed: %v", err)
		return &Failure{Code: CodeOf(err), Message: SignOutMessage}
	}
	sc.Logout()
	return nil
}

func (c *Client) failure(op string, err error) *Failure {
	code := CodeOf(err)
	if code == CodeUnknown || code == CodeNetwork {
		log.Printf("Failed to %s: %v", op, err)
	}
	return &Failure{Code: code, Message: messages[code]}
}
