package routes

import (
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterMeRoutes(r gin.IRouter) {
	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/dashboard", handlers.GetDashboard)
		me.GET("/rooms", handlers.GetMyRooms)
		me.GET("/favorites", handlers.GetMyFavorites)
		me.GET("/contacts", handlers.GetMyContacts)
	}
}
