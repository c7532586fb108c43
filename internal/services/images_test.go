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

func primaryImages(t *testing.T, db *gorm.DB, roomID string) []string {
	t.Helper()
	var ids []string
	require.NoError(t, db.Model(&models.RoomImage{}).Where("room_id = ? AND is_primary = ?", roomID, true).Pluck("id", &ids).Error)
	return ids
}

func TestRoomImages_SinglePrimary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createProfile(t, db, "owner", nil)
	room := createRoom(t, db, "room", owner.ID, nil)
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	first := models.RoomImage{ID: "img1", RoomID: room.ID, URL: "https://cdn.example.com/1.jpg", CreatedAt: base}
	second := models.RoomImage{ID: "img2", RoomID: room.ID, URL: "https://cdn.example.com/2.jpg", CreatedAt: base.Add(time.Hour)}
	third := models.RoomImage{ID: "img3", RoomID: room.ID, URL: "https://cdn.example.com/3.jpg", CreatedAt: base.Add(2 * time.Hour)}

	require.NoError(t, AddRoomImage(ctx, db, &first, false))
	assert.True(t, first.IsPrimary, "first image becomes primary")
	require.NoError(t, AddRoomImage(ctx, db, &second, false))
	assert.False(t, second.IsPrimary)
	assert.Equal(t, []string{"img1"}, primaryImages(t, db, room.ID))

	require.NoError(t, AddRoomImage(ctx, db, &third, true))
	assert.Equal(t, []string{"img3"}, primaryImages(t, db, room.ID))

	require.NoError(t, SetPrimaryImage(ctx, db, room.ID, "img2"))
	assert.Equal(t, []string{"img2"}, primaryImages(t, db, room.ID))

	// deleting the primary promotes the oldest remaining image
	deleted, err := DeleteRoomImage(ctx, db, room.ID, "img2")
	require.NoError(t, err)
	assert.Equal(t, "img2", deleted.ID)
	assert.Equal(t, []string{"img1"}, primaryImages(t, db, room.ID))

	// deleting a non-primary image leaves the primary alone
	_, err = DeleteRoomImage(ctx, db, room.ID, "img3")
	require.NoError(t, err)
	assert.Equal(t, []string{"img1"}, primaryImages(t, db, room.ID))

	_, err = DeleteRoomImage(ctx, db, room.ID, "img1")
	require.NoError(t, err)
	assert.Empty(t, primaryImages(t, db, room.ID))
}

func TestRoomImages_WrongRoom(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createProfile(t, db, "owner", nil)
	a := createRoom(t, db, "a", owner.ID, nil)
	b := createRoom(t, db, "b", owner.ID, nil)

	img := models.RoomImage{RoomID: a.ID, URL: "https://cdn.example.com/1.jpg"}
	require.NoError(t, AddRoomImage(ctx, db, &img, false))

	err := SetPrimaryImage(ctx, db, b.ID, img.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = DeleteRoomImage(ctx, db, b.ID, img.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUniqueSlugs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createProfile(t, db, "1", func(p *models.Profile) { p.Slug = "aisha-khan" })
	createProfile(t, db, "2", func(p *models.Profile) { p.Slug = "aisha-khan-2" })

	slug, err := ProfileSlug(ctx, db, "Aisha Khan")
	require.NoError(t, err)
	assert.Equal(t, "aisha-khan-3", slug)

	slug, err = ProfileSlug(ctx, db, "!!!")
	require.NoError(t, err)
	assert.Equal(t, "profile", slug)

	slug, err = RoomSlug(ctx, db, "Cozy Room, Downtown")
	require.NoError(t, err)
	assert.Equal(t, "cozy-room-downtown", slug)
}
