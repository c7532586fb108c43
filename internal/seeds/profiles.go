package seeds

import (
	"context"
	"fmt"
	"time"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/services"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type sampleRoom struct {
	title    string
	price    string
	roomType string
	amenity  []string
}

type sampleProfile struct {
	name, gender, city, state, neighborhood string
	age                                     int
	looking, halal, prayer, guests          bool
	bio                                     string
	rooms                                   []sampleRoom
}

var sampleProfiles = []sampleProfile{
	{name: "Amina Yusuf", gender: "female", city: "Charleston", state: "SC", neighborhood: "Downtown", age: 26,
		looking: true, halal: true, prayer: true, guests: false,
		bio: "Grad student at MUSC looking for a quiet, halal kitchen."},
	{name: "Omar Haddad", gender: "male", city: "Charleston", state: "SC", neighborhood: "Downtown", age: 29,
		halal: true, prayer: true, guests: true,
		bio: "Software engineer with a spare room near King Street.",
		rooms: []sampleRoom{{title: "Sunny room near King Street", price: "950.00", roomType: "Private Room", amenity: []string{"Wi-Fi", "Furnished"}}}},
	{name: "Sara Malik", gender: "female", city: "Mount Pleasant", state: "SC", neighborhood: "Old Village", age: 31,
		halal: true, guests: true,
		bio: "Nurse, early riser, offering a master bedroom.",
		rooms: []sampleRoom{{title: "Master bedroom with private bath", price: "1200.00", roomType: "Master Bedroom", amenity: []string{"Private Bathroom", "Parking", "In-unit Laundry"}}}},
	{name: "Bilal Rahman", gender: "male", city: "North Charleston", state: "SC", neighborhood: "Park Circle", age: 24,
		looking: true, prayer: true, guests: true,
		bio: "Boeing apprentice, tidy and friendly."},
	{name: "Fatima Noor", gender: "female", city: "West Ashley", state: "SC", neighborhood: "Avondale", age: 27,
		looking: true, halal: true, prayer: true,
		bio: "Teacher looking for a sister roommate."},
	{name: "Yusuf Ali", gender: "male", city: "James Island", state: "SC", neighborhood: "Riverland Terrace", age: 35,
		halal: true, guests: false,
		bio: "Quiet household, room close to the masjid.",
		rooms: []sampleRoom{{title: "Basement suite on James Island", price: "875.50", roomType: "Basement Suite", amenity: []string{"Near Masjid", "Air Conditioning"}}}},
	{name: "Hana Karim", gender: "female", city: "Columbia", state: "SC", neighborhood: "Five Points", age: 22,
		looking: true, guests: true,
		bio: "USC student, moving in August."},
}

// SeedProfiles creates the sample profiles and their rooms. Profiles whose
// name already exists are skipped.
func SeedProfiles(ctx context.Context, db *gorm.DB) error {
	created := 0
	for _, sp := range sampleProfiles {
		var count int64
		if err := db.Model(&models.Profile{}).Where("name = ?", sp.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := seedProfile(ctx, db, sp); err != nil {
			return fmt.Errorf("seed %s: %w", sp.name, err)
		}
		created++
	}
	logger.Info().Int("created", created).Msg("Profiles seeded")
	return nil
}

func seedProfile(ctx context.Context, db *gorm.DB, sp sampleProfile) error {
	return db.Transaction(func(tx *gorm.DB) error {
		slug, err := services.ProfileSlug(ctx, tx, sp.name)
		if err != nil {
			return err
		}
		gender, _ := models.ParseGender(sp.gender)
		age := sp.age
		profile := models.Profile{
			Name:             sp.name,
			Age:              &age,
			Gender:           gender,
			City:             sp.city,
			State:            sp.state,
			Neighborhood:     sp.neighborhood,
			IsLookingForRoom: sp.looking,
			HalalKitchen:     sp.halal,
			PrayerFriendly:   sp.prayer,
			GuestsAllowed:    sp.guests,
			Bio:              sp.bio,
			Slug:             slug,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		for _, sr := range sp.rooms {
			if err := seedRoom(ctx, tx, &profile, sr); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedRoom(ctx context.Context, tx *gorm.DB, owner *models.Profile, sr sampleRoom) error {
	var roomType models.RoomType
	if err := tx.Where("name = ?", sr.roomType).First(&roomType).Error; err != nil {
		return fmt.Errorf("room type %q: %w", sr.roomType, err)
	}
	var amenities []models.Amenity
	if err := tx.Where("name IN ?", sr.amenity).Find(&amenities).Error; err != nil {
		return err
	}

	slug, err := services.RoomSlug(ctx, tx, sr.title)
	if err != nil {
		return err
	}
	available := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	room := models.Room{
		OwnerID:        owner.ID,
		Title:          sr.title,
		City:           owner.City,
		Neighborhood:   owner.Neighborhood,
		Price:          decimal.RequireFromString(sr.price),
		AvailableFrom:  &available,
		RoomTypeID:     &roomType.ID,
		Amenities:      amenities,
		HalalKitchen:   owner.HalalKitchen,
		PrayerFriendly: owner.PrayerFriendly,
		GuestsAllowed:  owner.GuestsAllowed,
		IsActive:       true,
		Slug:           slug,
	}
	return tx.Create(&room).Error
}
