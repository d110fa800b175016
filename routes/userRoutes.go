package routes

import (
	"civiconnect-be/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine, uc *controllers.UserController, g Guards) {
	user := r.Group("/api/users")
	{
		user.GET("/me", g.Auth, uc.GetProfile)
	}
}
