package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts "male"/"female" in any case and reports whether the
// value was one of them.
func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	}
	return "", false
}

// Profile is a person's public listing. A profile created at registration has
// an owning user; profiles created by admins or seeds may not.
type Profile struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID *string `gorm:"type:text;uniqueIndex" json:"userId,omitempty"`

	Name         string `gorm:"type:varchar(100)" json:"name"`
	Age          *int   `json:"age"`
	Gender       Gender `gorm:"type:varchar(20)" json:"gender"`
	City         string `gorm:"type:varchar(100);index" json:"city"`
	State        string `gorm:"type:varchar(50)" json:"state"`
	Neighborhood string `gorm:"type:varchar(100)" json:"neighborhood"`
	ZipCode      string `gorm:"type:varchar(20)" json:"zipCode"`

	IsLookingForRoom bool `gorm:"not null" json:"isLookingForRoom"`
	HalalKitchen     bool `gorm:"not null" json:"halalKitchen"`
	PrayerFriendly   bool `gorm:"not null" json:"prayerFriendly"`
	GuestsAllowed    bool `gorm:"not null" json:"guestsAllowed"`

	Bio          string `gorm:"type:text" json:"bio"`
	ContactEmail string `gorm:"type:varchar(254)" json:"contactEmail"`
	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`

	RoommateProfile *RoommateProfile `gorm:"foreignKey:ProfileID" json:"roommateProfile,omitempty"`
	Rooms           []Room           `gorm:"foreignKey:OwnerID" json:"rooms,omitempty"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// OwnedBy reports whether userID owns this profile.
func (p *Profile) OwnedBy(userID string) bool {
	return p.UserID != nil && *p.UserID == userID
}

// RoommateProfile holds the extra details of someone looking for a roommate.
type RoommateProfile struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProfileID  string `gorm:"type:text;uniqueIndex;not null" json:"profileId"`
	Budget     *int   `json:"budget"`
	Occupation string `gorm:"type:varchar(100)" json:"occupation"`
}

func (r *RoommateProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
