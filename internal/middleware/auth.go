package middleware

import (
	"net/http"
	"strings"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/utils"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userId"
	ctxClaims = "claims"
	ctxRole   = "role"
)

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// authenticate resolves the bearer token to a live user. It returns the
// message for a 401 when it fails.
func authenticate(c *gin.Context) (string, bool) {
	if c.GetHeader("Authorization") == "" {
		return "Authorization header required", false
	}
	token, ok := bearerToken(c)
	if !ok {
		return "Invalid authorization header format", false
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		return "Invalid or expired token", false
	}
	if database.IsTokenBlacklisted(claims.GetJTI()) {
		return "Token has been revoked", false
	}

	var user models.User
	if err := database.DB.Select("id", "role").First(&user, "id = ?", claims.UserID).Error; err != nil {
		return "User not found", false
	}

	c.Set(ctxUserID, user.ID)
	c.Set(ctxRole, user.Role)
	c.Set(ctxClaims, claims)
	return "", true
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg, ok := authenticate(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller when a valid token is sent and
// otherwise lets the request through anonymously.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			authenticate(c)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// IsAdmin reports whether the authenticated caller has the ADMIN role.
func IsAdmin(c *gin.Context) bool {
	role, ok := c.Get(ctxRole)
	return ok && role == models.RoleAdmin
}

// Claims returns the validated token claims, if any.
func Claims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok && claims != nil
}
