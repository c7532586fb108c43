package migrations

import (
	"gorm.io/gorm"
)

// Migration001SearchIndexes adds the indexes the filter pipeline and inbox
// queries lean on, plus the partial unique index that keeps one primary image
// per room. Every statement is valid for both PostgreSQL and SQLite.
func Migration001SearchIndexes() Migration {
	statements := []string{
		// Case-insensitive city/neighborhood filters and the metro tier
		`CREATE INDEX IF NOT EXISTS idx_profiles_lower_city ON profiles (LOWER(city))`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_lower_neighborhood ON profiles (LOWER(neighborhood))`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_lower_city ON rooms (LOWER(city))`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_active_created ON rooms (is_active, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_room_amenities_amenity ON room_amenities (amenity_id)`,
		// Unread counters on the dashboard
		`CREATE INDEX IF NOT EXISTS idx_messages_recipient_unread ON messages (recipient_id, is_read)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_profile_unread ON contacts (profile_id, is_read)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_room_images_one_primary ON room_images (room_id) WHERE is_primary = true`,
	}
	drops := []string{
		`DROP INDEX IF EXISTS idx_profiles_lower_city`,
		`DROP INDEX IF EXISTS idx_profiles_lower_neighborhood`,
		`DROP INDEX IF EXISTS idx_rooms_lower_city`,
		`DROP INDEX IF EXISTS idx_rooms_active_created`,
		`DROP INDEX IF EXISTS idx_room_amenities_amenity`,
		`DROP INDEX IF EXISTS idx_messages_recipient_unread`,
		`DROP INDEX IF EXISTS idx_contacts_profile_unread`,
		`DROP INDEX IF EXISTS idx_room_images_one_primary`,
	}

	return Migration{
		ID:   "001_search_indexes",
		Name: "Add search, inbox and primary image indexes",
		Up: func(db *gorm.DB) error {
			return execAll(db, statements)
		},
		Down: func(db *gorm.DB) error {
			return execAll(db, drops)
		},
	}
}

func execAll(db *gorm.DB, statements []string) error {
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
