package routes

import (
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/gin-gonic/gin"
)

// RegisterListingRoutes expects OptionalAuthMiddleware on r so admins can
// see inactive rooms.
func RegisterListingRoutes(r gin.IRouter) {
	r.GET("/listings", handlers.GetListings)
	r.GET("/lookups", handlers.GetLookups)
}
