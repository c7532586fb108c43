package handlers

import (
	"errors"
	"net/http"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDashboard summarises the caller's profile, rooms and unread inbox.
func GetDashboard(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)

	rooms := []models.Room{}
	var unreadContacts, unreadMessages, favorites int64

	profile, err := currentProfile(ctx, database.DB, uid)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = nil
	case err != nil:
		abortDB(c, err, "", "")
		return
	default:
		if err := db.Preload("Images", "is_primary = ?", true).
			Where("owner_id = ?", profile.ID).
			Order("created_at DESC").
			Find(&rooms).Error; err != nil {
			abortDB(c, err, "", "")
			return
		}
		db.Model(&models.Contact{}).Where("profile_id = ? AND is_read = ?", profile.ID, false).Count(&unreadContacts)
	}

	db.Model(&models.Message{}).Where("recipient_id = ? AND is_read = ?", uid, false).Count(&unreadMessages)
	db.Model(&models.RoomFavorite{}).Where("user_id = ?", uid).Count(&favorites)

	c.JSON(http.StatusOK, gin.H{
		"profile":        profile,
		"rooms":          rooms,
		"unreadContacts": unreadContacts,
		"unreadMessages": unreadMessages,
		"favorites":      favorites,
	})
}
