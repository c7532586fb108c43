package services

import (
	"context"
	"testing"
	"time"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func count(t *testing.T, db *gorm.DB, model interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(where, args...).Count(&n).Error)
	return n
}

func TestDeleteProfile_Cascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := models.User{Email: "owner@example.com", Username: "owner"}
	other := models.User{Email: "other@example.com", Username: "other"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&other).Error)

	owner := createProfile(t, db, "owner", func(p *models.Profile) { p.UserID = &user.ID })
	reviewer := createProfile(t, db, "reviewer", func(p *models.Profile) { p.UserID = &other.ID })
	room := createRoom(t, db, "room", owner.ID, nil)
	keep := createRoom(t, db, "keep", reviewer.ID, nil)
	wifi := models.Amenity{Name: "Wi-Fi"}
	require.NoError(t, db.Create(&wifi).Error)
	require.NoError(t, db.Model(&room).Association("Amenities").Append(&wifi))

	require.NoError(t, db.Create(&models.RoommateProfile{ProfileID: owner.ID, Occupation: "Nurse"}).Error)
	require.NoError(t, db.Create(&models.RoomImage{RoomID: room.ID, URL: "https://cdn.example.com/a.jpg", StorageKey: "rooms/room/a.jpg", IsPrimary: true}).Error)
	require.NoError(t, db.Create(&models.RoomReview{RoomID: room.ID, ReviewerID: reviewer.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&models.RoomReview{RoomID: keep.ID, ReviewerID: owner.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&models.RoomFavorite{UserID: other.ID, RoomID: room.ID}).Error)
	require.NoError(t, db.Create(&models.RoomAvailability{RoomID: room.ID, StartDate: time.Now(), EndDate: time.Now().AddDate(0, 1, 0)}).Error)
	require.NoError(t, db.Create(&models.RoomVerification{RoomID: room.ID, Status: models.VerificationVerified}).Error)
	require.NoError(t, db.Create(&models.Contact{ProfileID: owner.ID, Name: "Sam", Email: "sam@example.com", Message: "Is the room free?"}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: other.ID, RecipientID: user.ID, Content: "Salam"}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: other.ID, RecipientID: other.ID, RoomID: &keep.ID, Content: "note to self"}).Error)

	keys, err := DeleteProfile(ctx, db, &owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"rooms/room/a.jpg"}, keys)

	assert.Zero(t, count(t, db, &models.Profile{}, "id = ?", owner.ID))
	assert.Zero(t, count(t, db, &models.Room{}, "owner_id = ?", owner.ID))
	assert.Zero(t, count(t, db, &models.RoommateProfile{}, "profile_id = ?", owner.ID))
	assert.Zero(t, count(t, db, &models.RoomImage{}, "room_id = ?", room.ID))
	assert.Zero(t, count(t, db, &models.RoomReview{}, "room_id = ? OR reviewer_id = ?", room.ID, owner.ID))
	assert.Zero(t, count(t, db, &models.RoomFavorite{}, "room_id = ?", room.ID))
	assert.Zero(t, count(t, db, &models.RoomAvailability{}, "room_id = ?", room.ID))
	assert.Zero(t, count(t, db, &models.RoomVerification{}, "room_id = ?", room.ID))
	assert.Zero(t, count(t, db, &models.Contact{}, "profile_id = ?", owner.ID))
	assert.Zero(t, count(t, db, &models.Message{}, "sender_id = ? OR recipient_id = ?", user.ID, user.ID))

	var links int64
	require.NoError(t, db.Table("room_amenities").Where("room_id = ?", room.ID).Count(&links).Error)
	assert.Zero(t, links)

	// unrelated rows survive, and so does the account
	assert.Equal(t, int64(1), count(t, db, &models.Room{}, "id = ?", keep.ID))
	assert.Equal(t, int64(1), count(t, db, &models.Message{}, "room_id = ?", keep.ID))
	assert.Equal(t, int64(1), count(t, db, &models.User{}, "id = ?", user.ID))
	assert.Equal(t, int64(1), count(t, db, &models.Amenity{}, "id = ?", wifi.ID))
}

func TestDeleteRoom_DetachesMessages(t *testing.T) {
	db := newTestDB(t)
	owner := createProfile(t, db, "owner", nil)
	room := createRoom(t, db, "room", owner.ID, nil)
	msg := models.Message{SenderID: "u1", RecipientID: "u2", RoomID: &room.ID, Content: "still available?"}
	require.NoError(t, db.Create(&msg).Error)

	_, err := DeleteRoom(context.Background(), db, room.ID)
	require.NoError(t, err)

	var reloaded models.Message
	require.NoError(t, db.First(&reloaded, "id = ?", msg.ID).Error)
	assert.Nil(t, reloaded.RoomID)
	assert.Zero(t, count(t, db, &models.Room{}, "id = ?", room.ID))
}
