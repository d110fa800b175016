package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"civiconnect-be/auth"
	"civiconnect-be/session"

	"github.com/gin-gonic/gin"
)

const authCookie = "auth_token"

// CookieConfig controls the auth_token cookie set on login.
type CookieConfig struct {
	Domain     string
	Production bool
}

type AuthController struct {
	client *auth.Client
	cookie CookieConfig
}

func NewAuthController(client *auth.Client, cookie CookieConfig) *AuthController {
	// For production, don't set domain to allow cross-origin cookies
	if cookie.Production {
		cookie.Domain = ""
	}
	return &AuthController{client: client, cookie: cookie}
}

func (ac *AuthController) setCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if token == "" {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		MaxAge:   maxAge,
		Path:     "/",
		Domain:   ac.cookie.Domain,
		Secure:   ac.cookie.Production,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// respondAuthError writes validation problems as field messages and provider
// failures as their fixed text.
func respondAuthError(c *gin.Context, err error) {
	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	var failure *auth.Failure
	if errors.As(err, &failure) {
		c.JSON(authStatusFor(failure.Code), gin.H{"error": failure.Message})
		return
	}
	log.Printf("Unexpected auth error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": auth.Message(err)})
}

func (ac *AuthController) respondSession(c *gin.Context, status int, sess *auth.Session) {
	ac.setCookie(c, sess.Token, sess.ExpiresAt)
	c.JSON(status, gin.H{
		"token":     sess.Token,
		"expiresAt": sess.ExpiresAt,
		"user":      sess.User,
	})
}

// RegisterUser handles user registration
func (ac *AuthController) RegisterUser(c *gin.Context) {
	var form auth.SignUpForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	sess, err := ac.client.SignUp(ctx, session.FromGin(c), form)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	ac.respondSession(c, http.StatusCreated, sess)
}

// LoginUser handles user login
func (ac *AuthController) LoginUser(c *gin.Context) {
	var form auth.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	sess, err := ac.client.Login(ctx, session.FromGin(c), form)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	ac.respondSession(c, http.StatusOK, sess)
}

// GetMe returns the signed-in user
func (ac *AuthController) GetMe(c *gin.Context) {
	user, ok := session.FromGin(c).CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// LogoutUser ends the session and clears the auth_token cookie
func (ac *AuthController) LogoutUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := ac.client.Logout(ctx, session.FromGin(c)); err != nil {
		respondAuthError(c, err)
		return
	}
	ac.setCookie(c, "", time.Time{})
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
