package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/appnity/roommate-finder/internal/config"
	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/metrics"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/logger"
	"gorm.io/gorm"
)

const (
	lookupKeyPrefix       = "lookups:"
	profileLocationsKey   = lookupKeyPrefix + "profile_locations"
	roomLocationsKey      = lookupKeyPrefix + "room_locations"
	defaultLookupCacheTTL = 5 * time.Minute
)

// Locations are the distinct non-empty cities and neighborhoods, sorted.
type Locations struct {
	Cities        []string `json:"cities"`
	Neighborhoods []string `json:"neighborhoods"`
}

// ProfileLocations lists locations across all profiles, unfiltered.
func ProfileLocations(ctx context.Context, db *gorm.DB) (*Locations, error) {
	return cachedLocations(ctx, db, profileLocationsKey, &models.Profile{})
}

// RoomLocations lists locations across all active rooms.
func RoomLocations(ctx context.Context, db *gorm.DB) (*Locations, error) {
	return cachedLocations(ctx, db, roomLocationsKey, &models.Room{})
}

// InvalidateLookups drops cached location lists. Call after any write that
// can change a city or neighborhood.
func InvalidateLookups(ctx context.Context) {
	if err := database.CacheInvalidate(ctx, lookupKeyPrefix+"*"); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate lookup cache")
	}
}

func cachedLocations(ctx context.Context, db *gorm.DB, key string, model interface{}) (*Locations, error) {
	var locs Locations
	err := database.CacheGet(ctx, key, &locs)
	if err == nil {
		metrics.LookupCacheResults.WithLabelValues("hit").Inc()
		return &locs, nil
	}
	if !errors.Is(err, database.ErrCacheMiss) {
		logger.Warn().Err(err).Str("key", key).Msg("Lookup cache read failed")
	}
	metrics.LookupCacheResults.WithLabelValues("miss").Inc()

	scope := func() *gorm.DB {
		q := db.WithContext(ctx).Model(model)
		if _, isRoom := model.(*models.Room); isRoom {
			q = q.Where("is_active = ?", true)
		}
		return q
	}

	if locs.Cities, err = distinctColumn(scope(), "city"); err != nil {
		return nil, err
	}
	if locs.Neighborhoods, err = distinctColumn(scope(), "neighborhood"); err != nil {
		return nil, err
	}

	if err := database.CacheSet(ctx, key, locs, lookupTTL()); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Lookup cache write failed")
	}
	return &locs, nil
}

// distinctColumn sorts in Go so ordering does not depend on the database collation.
func distinctColumn(q *gorm.DB, col string) ([]string, error) {
	values := []string{}
	if err := q.Where(col+" IS NOT NULL AND "+col+" <> ''").Distinct(col).Pluck(col, &values).Error; err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
	}
	sort.Strings(values)
	return values, nil
}

func lookupTTL() time.Duration {
	if config.AppConfig != nil && config.AppConfig.LookupCacheTTL > 0 {
		return config.AppConfig.LookupCacheTTL
	}
	return defaultLookupCacheTTL
}
