package middlewares

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"civiconnect-be/session"
	authUtils "civiconnect-be/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the token from "Bearer <token>", accepting a bare
// token as well, and falls back to the auth_token cookie set on login.
func bearerToken(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	if authHeader != "" {
		return authHeader
	}
	token, _ := c.Cookie("auth_token")
	return token
}

// authenticate signs sc in from the request token. It returns the HTTP
// status and message to reject with when the token is unusable.
func authenticate(c *gin.Context, secret string, sessions session.Store, sc *session.Context) (int, string) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return http.StatusUnauthorized, "No authorization token provided"
	}
	if secret == "" {
		return http.StatusInternalServerError, "JWT secret not configured"
	}

	userID, sessionID, err := authUtils.ParseToken(tokenString, secret)
	if err != nil {
		return http.StatusUnauthorized, "Invalid authorization token"
	}

	user, err := sessions.Load(c.Request.Context(), sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return http.StatusUnauthorized, "Session expired. Please log in again"
	}
	if err != nil {
		log.Printf("Session lookup failed: %v", err)
		return http.StatusServiceUnavailable, "Session store unavailable"
	}
	if user.ID != userID {
		return http.StatusUnauthorized, "Invalid token claims"
	}

	sc.Login(user, sessionID)
	c.Set("user_id", userID)
	return 0, ""
}

// AuthMiddleware builds the request's session context from the bearer token
// and rejects the request unless it belongs to a live session.
func AuthMiddleware(secret string, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := session.FromGin(c)
		if _, ok := sc.CurrentUser(); ok {
			c.Next()
			return
		}
		if status, msg := authenticate(c, secret, sessions, sc); status != 0 {
			c.JSON(status, gin.H{"error": msg})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the session context, signed in when the request
// carries a valid token and signed out otherwise.
func OptionalAuth(secret string, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := session.FromGin(c)
		if _, ok := sc.CurrentUser(); !ok && bearerToken(c) != "" {
			authenticate(c, secret, sessions, sc)
		}
		c.Next()
	}
}
