package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is an enquiry sent to a profile's owner. Senders may be anonymous.
// Only IsRead changes after creation.
type Contact struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	ProfileID    string  `gorm:"type:text;index;not null" json:"profileId"`
	SenderUserID *string `gorm:"type:text;index" json:"senderUserId,omitempty"`
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	Email        string  `gorm:"type:varchar(254);not null" json:"email"`
	Message      string  `gorm:"type:text;not null" json:"message"`
	IsRead       bool    `gorm:"not null" json:"isRead"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// Message is a direct message between two users, optionally about a room.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	SenderID    string `gorm:"type:text;index;not null" json:"senderId"`
	Sender      *User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	RecipientID string `gorm:"type:text;index;not null" json:"recipientId"`
	Recipient   *User  `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`

	RoomID  *string `gorm:"type:text;index" json:"roomId,omitempty"`
	Content string  `gorm:"type:text;not null" json:"content"`

	IsRead bool       `gorm:"not null" json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
