package routes

import (
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterProfileRoutes(r gin.IRouter) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("", handlers.GetProfiles)
		profiles.GET("/:id", handlers.GetProfile)
		profiles.POST("/:id/contact", middleware.ContactRateLimit(), handlers.CreateContact)

		profiles.POST("", middleware.AuthMiddleware(), handlers.CreateProfile)
		profiles.PUT("/:id", middleware.AuthMiddleware(), handlers.UpdateProfile)
		profiles.DELETE("/:id", middleware.AuthMiddleware(), handlers.DeleteProfile)
		profiles.PUT("/:id/roommate", middleware.AuthMiddleware(), handlers.UpsertRoommateProfile)
	}

	r.POST("/contacts/:id/read", middleware.AuthMiddleware(), handlers.MarkContactRead)
}
