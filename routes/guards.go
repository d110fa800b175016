package routes

import "github.com/gin-gonic/gin"

// Guards are the middlewares route groups attach to protected endpoints.
type Guards struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	IssueLimit   gin.HandlerFunc
	ChatLimit    gin.HandlerFunc
}
