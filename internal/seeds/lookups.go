package seeds

import (
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/logger"
	"gorm.io/gorm"
)

var (
	roomTypeNames = []string{"Private Room", "Shared Room", "Master Bedroom", "Studio", "Basement Suite"}
	amenityNames  = []string{"Wi-Fi", "Parking", "In-unit Laundry", "Furnished", "Air Conditioning", "Private Bathroom", "Near Masjid"}
)

// SeedLookups inserts the room types and amenities that are missing.
func SeedLookups(db *gorm.DB) error {
	for _, name := range roomTypeNames {
		if err := db.Where(models.RoomType{Name: name}).FirstOrCreate(&models.RoomType{}).Error; err != nil {
			return err
		}
	}
	for _, name := range amenityNames {
		if err := db.Where(models.Amenity{Name: name}).FirstOrCreate(&models.Amenity{}).Error; err != nil {
			return err
		}
	}
	logger.Info().Int("room_types", len(roomTypeNames)).Int("amenities", len(amenityNames)).Msg("Lookups seeded")
	return nil
}
