package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func filterRooms(t *testing.T, db *gorm.DB, q url.Values) *RoomResults {
	t.Helper()
	res, err := FilterRooms(context.Background(), db, charlestonRegistry(), ParseRoomFilter(q))
	require.NoError(t, err)
	return res
}

func roomIDs(rs []models.Room) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

func TestFilterRooms_ActiveOnlyNewestFirst(t *testing.T) {
	db := newTestDB(t)
	owner := createProfile(t, db, "owner", nil)
	createRoom(t, db, "r1", owner.ID, nil)
	createRoom(t, db, "r2", owner.ID, func(r *models.Room) { r.IsActive = false })
	createRoom(t, db, "r3", owner.ID, nil)

	res := filterRooms(t, db, url.Values{})
	assert.Equal(t, []string{"r3", "r1"}, roomIDs(res.Rooms))
	assert.Equal(t, int64(2), res.Count)

	res = filterRooms(t, db, url.Values{"include_inactive": {"true"}})
	assert.Equal(t, []string{"r3", "r2", "r1"}, roomIDs(res.Rooms))
}

func TestFilterRooms_PriceBounds(t *testing.T) {
	db := newTestDB(t)
	owner := createProfile(t, db, "owner", nil)
	for id, price := range map[string]string{"cheap": "550.00", "mid": "750.50", "edge": "900.00", "pricey": "1400.00"} {
		price := price
		createRoom(t, db, id, owner.ID, func(r *models.Room) { r.Price = decimal.RequireFromString(price) })
	}

	res := filterRooms(t, db, url.Values{"price_min": {"750.50"}, "price_max": {"900"}})
	assert.ElementsMatch(t, []string{"mid", "edge"}, roomIDs(res.Rooms))
	for _, r := range res.Rooms {
		assert.True(t, r.Price.GreaterThanOrEqual(decimal.RequireFromString("750.50")))
	}

	res = filterRooms(t, db, url.Values{"price_max": {"abc"}, "price_min": {"-1"}})
	assert.Equal(t, int64(4), res.Count)
}

func TestFilterRooms_TypeAmenityAndPreference(t *testing.T) {
	db := newTestDB(t)
	owner := createProfile(t, db, "owner", nil)
	private := models.RoomType{Name: "Private room"}
	parking := models.Amenity{Name: "Parking"}
	wifi := models.Amenity{Name: "Wi-Fi"}
	require.NoError(t, db.Create(&private).Error)
	require.NoError(t, db.Create(&parking).Error)
	require.NoError(t, db.Create(&wifi).Error)

	createRoom(t, db, "typed", owner.ID, func(r *models.Room) {
		r.RoomTypeID = &private.ID
		r.Amenities = []models.Amenity{parking, wifi}
		r.HalalKitchen = true
	})
	createRoom(t, db, "plain", owner.ID, func(r *models.Room) { r.Amenities = []models.Amenity{wifi} })

	res := filterRooms(t, db, url.Values{"room_type": {private.ID}})
	assert.Equal(t, []string{"typed"}, roomIDs(res.Rooms))
	require.NotNil(t, res.Rooms[0].RoomType)
	assert.Equal(t, "Private room", res.Rooms[0].RoomType.Name)

	res = filterRooms(t, db, url.Values{"amenity": {parking.ID}})
	assert.Equal(t, []string{"typed"}, roomIDs(res.Rooms))
	res = filterRooms(t, db, url.Values{"amenity": {wifi.ID}})
	assert.ElementsMatch(t, []string{"typed", "plain"}, roomIDs(res.Rooms))

	res = filterRooms(t, db, url.Values{"preference": {"halal_kitchen"}})
	assert.Equal(t, []string{"typed"}, roomIDs(res.Rooms))
	res = filterRooms(t, db, url.Values{"preference": {"looking_for_room"}})
	assert.Equal(t, int64(2), res.Count)
}

func TestFilterRooms_AvailableBy(t *testing.T) {
	db := newTestDB(t)
	owner := createProfile(t, db, "owner", nil)
	early := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	createRoom(t, db, "early", owner.ID, func(r *models.Room) { r.AvailableFrom = &early })
	createRoom(t, db, "late", owner.ID, func(r *models.Room) { r.AvailableFrom = &late })
	createRoom(t, db, "anytime", owner.ID, nil)

	res := filterRooms(t, db, url.Values{"available_by": {"2025-03-01"}})
	assert.ElementsMatch(t, []string{"early", "anytime"}, roomIDs(res.Rooms))

	res = filterRooms(t, db, url.Values{"available_by": {"03/01/2025"}})
	assert.Equal(t, int64(3), res.Count)
}

func TestFilterRooms_SearchAndMetro(t *testing.T) {
	db := newTestDB(t)
	owner := createProfile(t, db, "owner", nil)
	createRoom(t, db, "dt", owner.ID, func(r *models.Room) { r.Title = "Sunny room near King St"; r.Neighborhood = "Downtown" })
	createRoom(t, db, "atl", owner.ID, func(r *models.Room) { r.City = "Atlanta"; r.Description = "sunny and quiet" })

	res := filterRooms(t, db, url.Values{"search": {"SUNNY"}})
	assert.ElementsMatch(t, []string{"dt", "atl"}, roomIDs(res.Rooms))

	res = filterRooms(t, db, url.Values{"search": {"sunny"}, "metro_only": {"yes"}})
	assert.Equal(t, []string{"dt"}, roomIDs(res.Rooms))
	assert.Equal(t, []string{"Atlanta", "Charleston"}, res.Cities)
}
