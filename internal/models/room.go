package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomType struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (t *RoomType) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

type Amenity struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (a *Amenity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// Room is a listing offered by a profile. Price is stored as decimal(10,2).
type Room struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	OwnerID string   `gorm:"type:text;index;not null" json:"ownerId"`
	Owner   *Profile `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	RoomTypeID *string   `gorm:"type:text" json:"roomTypeId"`
	RoomType   *RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
	Amenities  []Amenity `gorm:"many2many:room_amenities" json:"amenities,omitempty"`

	City          string          `gorm:"type:varchar(100);index" json:"city"`
	Neighborhood  string          `gorm:"type:varchar(100)" json:"neighborhood"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	AvailableFrom *time.Time      `json:"availableFrom"`

	HalalKitchen   bool `gorm:"not null" json:"halalKitchen"`
	PrayerFriendly bool `gorm:"not null" json:"prayerFriendly"`
	GuestsAllowed  bool `gorm:"not null" json:"guestsAllowed"`
	IsActive       bool `gorm:"not null;index" json:"isActive"`

	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`
	ContactEmail string `gorm:"type:varchar(254)" json:"contactEmail"`

	Images       []RoomImage        `gorm:"foreignKey:RoomID" json:"images,omitempty"`
	Availability []RoomAvailability `gorm:"foreignKey:RoomID" json:"availability,omitempty"`
	Verification *RoomVerification  `gorm:"foreignKey:RoomID" json:"verification,omitempty"`
	Reviews      []RoomReview       `gorm:"foreignKey:RoomID" json:"reviews,omitempty"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// PrimaryImage returns the image flagged primary, if any.
func (r *Room) PrimaryImage() *RoomImage {
	for i := range r.Images {
		if r.Images[i].IsPrimary {
			return &r.Images[i]
		}
	}
	return nil
}

type RoomImage struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	RoomID     string `gorm:"type:text;index;not null" json:"roomId"`
	URL        string `gorm:"type:text;not null" json:"url"`
	StorageKey string `gorm:"type:text" json:"-"`
	Caption    string `gorm:"type:varchar(200)" json:"caption"`
	IsPrimary  bool   `gorm:"not null" json:"isPrimary"`
}

func (i *RoomImage) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

// RoomAvailability is a date window in which the room can be taken.
type RoomAvailability struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	RoomID    string    `gorm:"type:text;index;not null" json:"roomId"`
	StartDate time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate   time.Time `gorm:"type:date;not null" json:"endDate"`
}

func (a *RoomAvailability) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

type RoomVerification struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RoomID     string             `gorm:"type:text;uniqueIndex;not null" json:"roomId"`
	Status     VerificationStatus `gorm:"type:varchar(20);not null" json:"status"`
	Note       string             `gorm:"type:text" json:"note"`
	VerifiedBy *string            `gorm:"type:text" json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time         `json:"verifiedAt,omitempty"`
}

func (v *RoomVerification) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
