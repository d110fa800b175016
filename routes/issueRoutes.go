package routes

import (
	"civiconnect-be/controllers"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, g Guards) {
	issue := r.Group("/api/issues")
	{
		issue.GET("", ic.GetAllIssues)
		issue.GET("/recent", ic.RecentIssues)
		issue.GET("/stats", ic.GetIssueStats)
		issue.GET("/:id", ic.GetIssue)
		issue.POST("", g.Auth, g.IssueLimit, ic.CreateIssue)
		issue.POST("/:id/like", g.Auth, ic.HandleLikeOnIssue)
	}
}
