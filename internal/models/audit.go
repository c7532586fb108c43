package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionType string

const (
	ActionVerifyRoom       ActionType = "VERIFY_ROOM"
	ActionSetRoomActive    ActionType = "SET_ROOM_ACTIVE"
	ActionCreateRoomType   ActionType = "CREATE_ROOM_TYPE"
	ActionCreateAmenity    ActionType = "CREATE_AMENITY"
	ActionDeleteProfile    ActionType = "DELETE_PROFILE"
	ActionDeleteRoom       ActionType = "DELETE_ROOM"
	ActionPromoteUserAdmin ActionType = "PROMOTE_ADMIN"
)

// AdminAction records one privileged change for the admin audit trail.
type AdminAction struct {
	ID         string     `gorm:"primaryKey;type:text" json:"id"`
	AdminID    string     `gorm:"type:text;index" json:"adminId"`
	Action     ActionType `gorm:"type:varchar(40)" json:"action"`
	TargetID   string     `gorm:"type:text" json:"targetId"`
	TargetType string     `gorm:"type:varchar(40)" json:"targetType"` // "room", "profile", "room_type", ...
	Details    string     `gorm:"type:text" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
}

func (a *AdminAction) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// All lists every persisted model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&RoommateProfile{},
		&RoomType{},
		&Amenity{},
		&Room{},
		&RoomImage{},
		&RoomAvailability{},
		&RoomVerification{},
		&RoomReview{},
		&RoomFavorite{},
		&Contact{},
		&Message{},
		&AdminAction{},
	}
}
