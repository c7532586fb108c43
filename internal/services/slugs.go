package services

import (
	"context"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/utils"
	"gorm.io/gorm"
)

// ProfileSlug returns a free slug for name, falling back to "profile".
func ProfileSlug(ctx context.Context, db *gorm.DB, name string) (string, error) {
	return uniqueSlug(ctx, db, &models.Profile{}, name, "profile")
}

// RoomSlug returns a free slug for title, falling back to "room".
func RoomSlug(ctx context.Context, db *gorm.DB, title string) (string, error) {
	return uniqueSlug(ctx, db, &models.Room{}, title, "room")
}

// A concurrent insert can still take the slug between check and write; the
// unique index turns that into a 409 for the caller.
func uniqueSlug(ctx context.Context, db *gorm.DB, model interface{}, input, fallback string) (string, error) {
	return utils.UniqueSlug(input, fallback, func(candidate string) (bool, error) {
		var n int64
		err := db.WithContext(ctx).Model(model).Where("slug = ?", candidate).Count(&n).Error
		return n > 0, err
	})
}
