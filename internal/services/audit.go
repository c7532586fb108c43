package services

import (
	"context"
	"encoding/json"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/logger"
	"gorm.io/gorm"
)

// RecordAdminAction appends to the admin audit trail. Failures are logged and
// never fail the admin request.
func RecordAdminAction(ctx context.Context, db *gorm.DB, adminID string, action models.ActionType, targetType, targetID string, details map[string]interface{}) {
	entry := models.AdminAction{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			entry.Details = string(b)
		}
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		logger.Error().Err(err).Str("action", string(action)).Str("target_id", targetID).Msg("Failed to record admin action")
	}
}
