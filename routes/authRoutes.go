package routes

import (
	"civiconnect-be/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ac *controllers.AuthController, g Guards) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", ac.RegisterUser)
		auth.POST("/login", ac.LoginUser)
		auth.POST("/logout", g.Auth, ac.LogoutUser)
		auth.GET("/me", g.Auth, ac.GetMe)
	}
}
