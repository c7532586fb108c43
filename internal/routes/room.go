package routes

import (
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoomRoutes(r gin.IRouter) {
	rooms := r.Group("/rooms")
	{
		rooms.GET("", handlers.GetRooms)
		rooms.GET("/:id", handlers.GetRoom)
	}

	owned := rooms.Group("")
	owned.Use(middleware.AuthMiddleware())
	{
		owned.POST("", handlers.CreateRoom)
		owned.PUT("/:id", handlers.UpdateRoom)
		owned.DELETE("/:id", handlers.DeleteRoom)

		owned.POST("/:id/images", middleware.UploadRateLimit(), handlers.AddRoomImage)
		owned.DELETE("/:id/images/:imageId", handlers.DeleteRoomImage)
		owned.POST("/:id/images/:imageId/primary", handlers.SetPrimaryRoomImage)

		owned.POST("/:id/availability", handlers.AddAvailability)
		owned.DELETE("/:id/availability/:availabilityId", handlers.DeleteAvailability)

		owned.POST("/:id/favorite", handlers.FavoriteRoom)
		owned.DELETE("/:id/favorite", handlers.UnfavoriteRoom)

		owned.POST("/:id/reviews", handlers.CreateReview)
	}

	r.DELETE("/reviews/:id", middleware.AuthMiddleware(), handlers.DeleteReview)
}
