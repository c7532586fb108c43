package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomReview is unique per (room, reviewer).
type RoomReview struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	RoomID     string   `gorm:"type:text;not null;uniqueIndex:idx_room_reviewer" json:"roomId"`
	ReviewerID string   `gorm:"type:text;not null;uniqueIndex:idx_room_reviewer" json:"reviewerId"`
	Reviewer   *Profile `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Rating     int      `gorm:"not null" json:"rating"`
	Comment    string   `gorm:"type:text" json:"comment"`
}

func (r *RoomReview) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// RoomFavorite is unique per (user, room).
type RoomFavorite struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID string `gorm:"type:text;not null;uniqueIndex:idx_user_room_favorite" json:"userId"`
	RoomID string `gorm:"type:text;not null;uniqueIndex:idx_user_room_favorite" json:"roomId"`
	Room   *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (f *RoomFavorite) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
