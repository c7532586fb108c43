package handlers

import (
	"context"
	"net/http"

	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/appnity/roommate-finder/internal/storage"
	"github.com/appnity/roommate-finder/internal/validation"
	apperrors "github.com/appnity/roommate-finder/pkg/errors"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/appnity/roommate-finder/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	// Regions drives the metro filter and the similar-profile fallback.
	Regions *regions.Registry

	// Store receives uploaded room images. Nil disables multipart uploads.
	Store storage.ObjectStore
)

// abortWith hands err to ErrorHandlerMiddleware.
func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// abortDB maps a gorm error to 404/409/500 and logs the unexpected ones.
func abortDB(c *gin.Context, err error, notFoundMsg, conflictMsg string) {
	appErr := apperrors.FromDB(err, notFoundMsg, conflictMsg)
	if appErr.Code == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Database error")
	}
	abortWith(c, appErr)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return false
	}
	return true
}

// byIDOrSlug matches path values that may be either a uuid or a slug.
func byIDOrSlug(db *gorm.DB, value string) *gorm.DB {
	if utils.IsUUID(value) {
		return db.Where("id = ?", value)
	}
	return db.Where("slug = ?", value)
}

// currentProfile returns the signed-in user's profile or gorm.ErrRecordNotFound.
func currentProfile(ctx context.Context, db *gorm.DB, userID string) (*models.Profile, error) {
	var p models.Profile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func canEditProfile(c *gin.Context, p *models.Profile) bool {
	return middleware.IsAdmin(c) || p.OwnedBy(middleware.CurrentUserID(c))
}

// canEditRoom reports whether the caller owns the room's profile or is an admin.
func canEditRoom(c *gin.Context, db *gorm.DB, room *models.Room) (bool, error) {
	if middleware.IsAdmin(c) {
		return true, nil
	}
	uid := middleware.CurrentUserID(c)
	if uid == "" {
		return false, nil
	}
	var count int64
	err := db.WithContext(c.Request.Context()).Model(&models.Profile{}).
		Where("id = ? AND user_id = ?", room.OwnerID, uid).
		Count(&count).Error
	return count > 0, err
}

// deleteObjects removes stored images after their rows are gone. Failures
// only leave orphaned objects, so they are logged and skipped.
func deleteObjects(ctx context.Context, keys []string) {
	if Store == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := Store.Delete(ctx, key); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to delete stored image")
		}
	}
}
