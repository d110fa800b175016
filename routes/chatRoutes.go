package routes

import (
	"civiconnect-be/controllers"

	"github.com/gin-gonic/gin"
)

func ChatRoutes(r *gin.Engine, cc *controllers.ChatController, g Guards) {
	chat := r.Group("/api/chat/sessions")
	{
		chat.POST("", cc.StartSession)
		chat.POST("/:id/messages", g.ChatLimit, cc.SendMessage)
		chat.GET("/:id/messages", cc.GetMessages)
	}
}
