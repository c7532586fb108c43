package seeds

import (
	"context"
	"fmt"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/logger"
	"gorm.io/gorm"
)

// Run seeds lookups and sample listings. It is safe to run repeatedly.
func Run(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if _, err := GetOrCreateSystemUser(db); err != nil {
		return fmt.Errorf("system user: %w", err)
	}
	if err := SeedLookups(db); err != nil {
		return fmt.Errorf("lookups: %w", err)
	}
	if err := SeedProfiles(ctx, db); err != nil {
		return fmt.Errorf("profiles: %w", err)
	}
	return nil
}

// clearOrder deletes children before parents. Users are kept.
var clearOrder = []interface{}{
	&models.AdminAction{},
	&models.Message{},
	&models.Contact{},
	&models.RoomFavorite{},
	&models.RoomReview{},
	&models.RoomVerification{},
	&models.RoomAvailability{},
	&models.RoomImage{},
	&models.Room{},
	&models.RoommateProfile{},
	&models.Profile{},
	&models.Amenity{},
	&models.RoomType{},
}

// Clear empties every listing table but keeps user accounts.
func Clear(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM room_amenities").Error; err != nil {
			return fmt.Errorf("clear room_amenities: %w", err)
		}
		for _, m := range clearOrder {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}
		logger.Info().Int("tables", len(clearOrder)+1).Msg("Listing tables cleared")
		return nil
	})
}
