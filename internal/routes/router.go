package routes

import (
	"strings"

	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/metrics"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the middleware chain and every API route.
// The socket.io endpoints are mounted by the server once the socket server runs.
func NewRouter() *gin.Engine {
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeaders())

	// socket.io polling would exhaust the general limiter
	general := middleware.GeneralRateLimit()
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/socket.io/") {
			c.Next()
			return
		}
		general(c)
	})

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		RegisterAuthRoutes(auth)

		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware())
		RegisterListingRoutes(public)
		RegisterProfileRoutes(public)
		RegisterRoomRoutes(public)

		RegisterMeRoutes(api)
		RegisterMessageRoutes(api)
		RegisterAdminRoutes(api)
	}

	return r
}
