package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/appnity/roommate-finder/internal/metrics"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/appnity/roommate-finder/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

// RoomFilter is the parsed form of the room listing query string.
type RoomFilter struct {
	Search          string
	City            string
	Neighborhood    string
	Preference      string
	PriceMin        *decimal.Decimal
	PriceMax        *decimal.Decimal
	RoomTypeID      string
	AmenityID       string
	AvailableBy     *time.Time
	MetroOnly       bool
	Region          string
	IncludeInactive bool
	Page            Page
}

// ParseRoomFilter never fails. include_inactive is read here but callers must
// clear it for non-admins.
func ParseRoomFilter(q url.Values) RoomFilter {
	f := RoomFilter{
		Search:          q.Get("search"),
		City:            q.Get("city"),
		Neighborhood:    q.Get("neighborhood"),
		Preference:      q.Get("preference"),
		RoomTypeID:      strings.TrimSpace(q.Get("room_type")),
		AmenityID:       strings.TrimSpace(q.Get("amenity")),
		MetroOnly:       isSet(q.Get("metro_only")) || isSet(q.Get("charleston_only")),
		Region:          q.Get("region"),
		IncludeInactive: isSet(q.Get("include_inactive")),
		Page:            ParsePage(q),
	}
	f.PriceMin = parsePrice(q.Get("price_min"))
	f.PriceMax = parsePrice(q.Get("price_max"))
	if raw := strings.TrimSpace(q.Get("available_by")); raw != "" {
		if t, err := time.ParseInLocation(DateLayout, raw, time.UTC); err == nil {
			f.AvailableBy = &t
		}
	}
	return f
}

func parsePrice(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

func (f RoomFilter) apply(q *gorm.DB, reg *regions.Registry) *gorm.DB {
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if pattern := utils.SanitizeSearchQuery(f.Search); pattern != "" {
		clause, args := likeClause(pattern, "title", "description", "city", "neighborhood")
		q = q.Where(clause, args...)
	}
	q = applySubstring(q, "city", f.City)
	q = applySubstring(q, "neighborhood", f.Neighborhood)
	q = applyPreference(q, roomPreferenceColumns, f.Preference)

	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.RoomTypeID != "" {
		q = q.Where("room_type_id = ?", f.RoomTypeID)
	}
	if f.AmenityID != "" {
		q = q.Where("id IN (SELECT room_id FROM room_amenities WHERE amenity_id = ?)", f.AmenityID)
	}
	if f.AvailableBy != nil {
		q = q.Where("(available_from IS NULL OR available_from < ?)", f.AvailableBy.AddDate(0, 0, 1))
	}
	if f.MetroOnly {
		q = applyMetro(q, reg, f.Region)
	}
	return q
}

type RoomResults struct {
	Rooms         []models.Room `json:"rooms"`
	Cities        []string      `json:"cities"`
	Neighborhoods []string      `json:"neighborhoods"`
	Count         int64         `json:"count"`
	Page          Page          `json:"pagination"`
}

// FilterRooms runs the room filter pipeline with the same ordering and
// pagination contract as FilterProfiles.
func FilterRooms(ctx context.Context, db *gorm.DB, reg *regions.Registry, f RoomFilter) (*RoomResults, error) {
	if f.Page.Size == 0 {
		f.Page = Page{Number: 1, Size: DefaultPageSize}
	}
	base := func() *gorm.DB {
		return f.apply(db.WithContext(ctx).Model(&models.Room{}), reg)
	}

	var count int64
	if err := base().Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}

	rooms := []models.Room{}
	if err := base().
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("is_primary DESC").Order("created_at ASC")
		}).
		Preload("RoomType").
		Preload("Amenities").
		Order("created_at DESC").Order("id ASC").
		Offset(f.Page.Offset()).Limit(f.Page.Size).
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("filter rooms: %w", err)
	}

	locs, err := RoomLocations(ctx, db)
	if err != nil {
		return nil, err
	}

	metrics.ObserveSearch("rooms", count)
	return &RoomResults{
		Rooms:         rooms,
		Cities:        locs.Cities,
		Neighborhoods: locs.Neighborhoods,
		Count:         count,
		Page:          f.Page,
	}, nil
}
