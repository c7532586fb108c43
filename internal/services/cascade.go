package services

import (
	"context"
	"fmt"

	"github.com/appnity/roommate-finder/internal/models"
	"gorm.io/gorm"
)

// DeleteRoom removes a room and everything hanging off it in one transaction.
// It returns the storage keys of the removed images so the caller can delete
// the objects once the transaction has committed.
func DeleteRoom(ctx context.Context, db *gorm.DB, roomID string) ([]string, error) {
	var keys []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		keys, err = deleteRooms(tx, []string{roomID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// DeleteProfile removes a profile with its rooms (and their dependents),
// roommate details, received contacts, written reviews, and the direct
// messages of its owning user. The user account itself is kept.
func DeleteProfile(ctx context.Context, db *gorm.DB, profile *models.Profile) ([]string, error) {
	var keys []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomIDs []string
		if err := tx.Model(&models.Room{}).Where("owner_id = ?", profile.ID).Pluck("id", &roomIDs).Error; err != nil {
			return fmt.Errorf("list rooms: %w", err)
		}
		var err error
		if keys, err = deleteRooms(tx, roomIDs); err != nil {
			return err
		}

		steps := []struct {
			what  string
			model interface{}
			where string
			arg   interface{}
		}{
			{"roommate profile", &models.RoommateProfile{}, "profile_id = ?", profile.ID},
			{"contacts", &models.Contact{}, "profile_id = ?", profile.ID},
			{"reviews", &models.RoomReview{}, "reviewer_id = ?", profile.ID},
		}
		if profile.UserID != nil {
			uid := *profile.UserID
			if err := tx.Where("sender_id = ? OR recipient_id = ?", uid, uid).Delete(&models.Message{}).Error; err != nil {
				return fmt.Errorf("delete messages: %w", err)
			}
		}
		for _, s := range steps {
			if err := tx.Where(s.where, s.arg).Delete(s.model).Error; err != nil {
				return fmt.Errorf("delete %s: %w", s.what, err)
			}
		}

		if err := tx.Delete(&models.Profile{}, "id = ?", profile.ID).Error; err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func deleteRooms(tx *gorm.DB, roomIDs []string) ([]string, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}

	var keys []string
	if err := tx.Model(&models.RoomImage{}).
		Where("room_id IN ? AND storage_key <> ''", roomIDs).
		Pluck("storage_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("list image keys: %w", err)
	}

	children := []struct {
		what  string
		model interface{}
	}{
		{"images", &models.RoomImage{}},
		{"reviews", &models.RoomReview{}},
		{"favorites", &models.RoomFavorite{}},
		{"availability", &models.RoomAvailability{}},
		{"verification", &models.RoomVerification{}},
	}
	for _, ch := range children {
		if err := tx.Where("room_id IN ?", roomIDs).Delete(ch.model).Error; err != nil {
			return nil, fmt.Errorf("delete room %s: %w", ch.what, err)
		}
	}
	if err := tx.Exec("DELETE FROM room_amenities WHERE room_id IN ?", roomIDs).Error; err != nil {
		return nil, fmt.Errorf("delete room amenities: %w", err)
	}
	// Messages about a deleted room survive as plain direct messages.
	if err := tx.Model(&models.Message{}).Where("room_id IN ?", roomIDs).Update("room_id", nil).Error; err != nil {
		return nil, fmt.Errorf("detach messages: %w", err)
	}
	if err := tx.Where("id IN ?", roomIDs).Delete(&models.Room{}).Error; err != nil {
		return nil, fmt.Errorf("delete rooms: %w", err)
	}
	return keys, nil
}
