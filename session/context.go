// Package session tracks who is signed in.
package session

import (
	"sync"

	"civiconnect-be/models"

	"github.com/gin-gonic/gin"
)

const ginKey = "session"

// Context holds the current user, if any. Handlers receive it by reference
// from the auth middleware instead of rebuilding it.
type Context struct {
	mu        sync.RWMutex
	user      *models.User
	sessionID string
}

// NewContext returns a signed-out context.
func NewContext() *Context {
	return &Context{}
}

// CurrentUser returns the signed-in user and true, or false when signed out.
func (c *Context) CurrentUser() (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return models.User{}, false
	}
	return *c.user, true
}

// SessionID returns the provider session backing the current user.
func (c *Context) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

func (c *Context) Login(user models.User, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = &user
	c.sessionID = sessionID
}

func (c *Context) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.sessionID = ""
}

// Attach stores c on the gin context.
func Attach(g *gin.Context, c *Context) {
	g.Set(ginKey, c)
}

// FromGin returns the context attached by the auth middleware, or a
// signed-out one when no middleware ran.
func FromGin(g *gin.Context) *Context {
	if v, ok := g.Get(ginKey); ok {
		if c, ok := v.(*Context); ok {
			return c
		}
	}
	c := NewContext()
	Attach(g, c)
	return c
}
