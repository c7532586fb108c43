package routes

import (
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	// Logout needs the validated claims to revoke the token
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
	r.GET("/me", middleware.AuthMiddleware(), handlers.Me)
}
