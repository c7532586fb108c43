package routes

import (
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAdminRoutes(r gin.IRouter) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/stats", handlers.AdminGetStats)
	admin.GET("/audit-logs", handlers.AdminGetAuditLogs)

	// Rooms
	admin.PUT("/rooms/:id/verification", handlers.AdminSetVerification)
	admin.PATCH("/rooms/:id/active", handlers.AdminSetRoomActive)

	// Lookups
	admin.GET("/room-types", handlers.AdminListRoomTypes)
	admin.POST("/room-types", handlers.AdminCreateRoomType)
	admin.GET("/amenities", handlers.AdminListAmenities)
	admin.POST("/amenities", handlers.AdminCreateAmenity)

	admin.GET("/contacts", handlers.AdminListContacts)
}
