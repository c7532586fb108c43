package routes

import (
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.GET("", handlers.GetMessages) // ?userId=...
		messages.POST("", middleware.MessageRateLimit(), handlers.SendMessage)
		messages.GET("/conversations", handlers.GetConversations)
		messages.POST("/read/:senderId", handlers.MarkRead)
	}
}
