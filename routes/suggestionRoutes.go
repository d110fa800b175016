package routes

import (
	"civiconnect-be/controllers"

	"github.com/gin-gonic/gin"
)

func SuggestionRoutes(r *gin.Engine, sc *controllers.SuggestionController, g Guards) {
	suggestion := r.Group("/api/suggestions")
	{
		suggestion.GET("", g.OptionalAuth, sc.GetSuggestions)
		suggestion.POST("", g.Auth, sc.CreateSuggestion)
		suggestion.POST("/:id/vote", g.Auth, sc.HandleVoteOnSuggestion)
	}
}
