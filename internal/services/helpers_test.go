package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database for one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func charlestonRegistry() *regions.Registry {
	return regions.New("charleston", regions.Region{
		Slug:   "charleston",
		Name:   "Charleston Metro",
		State:  "SC",
		Cities: []string{"Charleston", "Mount Pleasant", "West Ashley", "James Island", "North Charleston"},
		Areas:  []string{"Downtown", "West Ashley", "Mount Pleasant", "James Island", "Charleston County"},
	})
}

var seedClock = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// createProfile inserts a profile whose CreatedAt increases with every call,
// so "newest first" ordering is predictable.
func createProfile(t *testing.T, db *gorm.DB, id string, mutate func(p *models.Profile)) models.Profile {
	t.Helper()
	seedClock = seedClock.Add(time.Minute)
	p := models.Profile{
		ID:            id,
		CreatedAt:     seedClock,
		Name:          "Person " + id,
		Gender:        models.GenderMale,
		GuestsAllowed: true,
		Slug:          "person-" + id,
	}
	if mutate != nil {
		mutate(&p)
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createRoom(t *testing.T, db *gorm.DB, id, ownerID string, mutate func(r *models.Room)) models.Room {
	t.Helper()
	seedClock = seedClock.Add(time.Minute)
	r := models.Room{
		ID:        id,
		CreatedAt: seedClock,
		OwnerID:   ownerID,
		Title:     "Room " + id,
		City:      "Charleston",
		Price:     decimal.RequireFromString("800.00"),
		IsActive:  true,
		Slug:      "room-" + id,
	}
	if mutate != nil {
		mutate(&r)
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func intPtr(n int) *int { return &n }

func profileIDs(ps []models.Profile) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func similarIDs(ps []SimilarProfile) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
