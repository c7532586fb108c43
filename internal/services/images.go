package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/appnity/roommate-finder/internal/models"
	"gorm.io/gorm"
)

// AddRoomImage stores an image row. The first image of a room becomes primary,
// as does any image added with primary=true (demoting the previous one).
func AddRoomImage(ctx context.Context, db *gorm.DB, img *models.RoomImage, primary bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.RoomImage{}).Where("room_id = ?", img.RoomID).Count(&existing).Error; err != nil {
			return fmt.Errorf("count images: %w", err)
		}
		img.IsPrimary = primary || existing == 0
		if img.IsPrimary && existing > 0 {
			if err := clearPrimary(tx, img.RoomID); err != nil {
				return err
			}
		}
		if err := tx.Create(img).Error; err != nil {
			return fmt.Errorf("create image: %w", err)
		}
		return nil
	})
}

// SetPrimaryImage makes imageID the only primary image of roomID.
func SetPrimaryImage(ctx context.Context, db *gorm.DB, roomID, imageID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var img models.RoomImage
		if err := tx.Where("id = ? AND room_id = ?", imageID, roomID).First(&img).Error; err != nil {
			return err
		}
		if err := clearPrimary(tx, roomID); err != nil {
			return err
		}
		return tx.Model(&img).Update("is_primary", true).Error
	})
}

// DeleteRoomImage removes one image. When it was primary the oldest remaining
// image is promoted. The deleted row is returned for storage cleanup.
func DeleteRoomImage(ctx context.Context, db *gorm.DB, roomID, imageID string) (*models.RoomImage, error) {
	var img models.RoomImage
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND room_id = ?", imageID, roomID).First(&img).Error; err != nil {
			return err
		}
		if err := tx.Delete(&img).Error; err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
		if !img.IsPrimary {
			return nil
		}

		var next models.RoomImage
		err := tx.Where("room_id = ?", roomID).Order("created_at ASC").Order("id ASC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("find next primary: %w", err)
		}
		return tx.Model(&next).Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func clearPrimary(tx *gorm.DB, roomID string) error {
	if err := tx.Model(&models.RoomImage{}).
		Where("room_id = ? AND is_primary = ?", roomID, true).
		Update("is_primary", false).Error; err != nil {
		return fmt.Errorf("clear primary image: %w", err)
	}
	return nil
}
