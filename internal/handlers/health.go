package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/gin-gonic/gin"
)

// Health reports database and Redis status. Redis is optional, so only the
// database decides the status code.
func Health(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = "unavailable"
	}

	redisStatus := "disabled"
	if database.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		redisStatus = "ok"
		if err := database.Redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unavailable"
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":   overall,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
