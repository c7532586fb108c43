package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/appnity/roommate-finder/internal/metrics"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/appnity/roommate-finder/pkg/utils"
	"gorm.io/gorm"
)

// ProfileFilter is the parsed form of the profile listing query string.
// Zero values mean "not filtered".
type ProfileFilter struct {
	Search       string
	City         string
	Neighborhood string
	Gender       string
	Preference   string
	AgeMin       *int
	AgeMax       *int
	MetroOnly    bool
	Region       string
	Page         Page
}

// ParseProfileFilter never fails: malformed values are dropped.
func ParseProfileFilter(q url.Values) ProfileFilter {
	f := ProfileFilter{
		Search:       q.Get("search"),
		City:         q.Get("city"),
		Neighborhood: q.Get("neighborhood"),
		Gender:       q.Get("gender"),
		Preference:   q.Get("preference"),
		MetroOnly:    isSet(q.Get("metro_only")) || isSet(q.Get("charleston_only")),
		Region:       q.Get("region"),
		Page:         ParsePage(q),
	}
	if n, ok := parseNonNegative(q.Get("age_min")); ok {
		f.AgeMin = &n
	}
	if n, ok := parseNonNegative(q.Get("age_max")); ok {
		f.AgeMax = &n
	}
	return f
}

func (f ProfileFilter) apply(q *gorm.DB, reg *regions.Registry) *gorm.DB {
	if pattern := utils.SanitizeSearchQuery(f.Search); pattern != "" {
		clause, args := likeClause(pattern, "name", "city", "neighborhood", "bio")
		q = q.Where(clause, args...)
	}
	q = applySubstring(q, "city", f.City)
	q = applySubstring(q, "neighborhood", f.Neighborhood)

	if g, ok := models.ParseGender(f.Gender); ok {
		q = q.Where("gender = ?", g)
	}
	q = applyPreference(q, profilePreferenceColumns, f.Preference)

	if f.AgeMin != nil {
		q = q.Where("age >= ?", *f.AgeMin)
	}
	if f.AgeMax != nil {
		q = q.Where("age <= ?", *f.AgeMax)
	}
	if f.MetroOnly {
		q = applyMetro(q, reg, f.Region)
	}
	return q
}

// ProfileResults is one page of filtered profiles plus the location lookups.
// Count is the total number of matches, not the page length.
type ProfileResults struct {
	Profiles      []models.Profile `json:"profiles"`
	Cities        []string         `json:"cities"`
	Neighborhoods []string         `json:"neighborhoods"`
	Count         int64            `json:"count"`
	Page          Page             `json:"pagination"`
}

// FilterProfiles runs the profile filter pipeline. Newest profiles come first,
// ties broken by id.
func FilterProfiles(ctx context.Context, db *gorm.DB, reg *regions.Registry, f ProfileFilter) (*ProfileResults, error) {
	if f.Page.Size == 0 {
		f.Page = Page{Number: 1, Size: DefaultPageSize}
	}
	base := func() *gorm.DB {
		return f.apply(db.WithContext(ctx).Model(&models.Profile{}), reg)
	}

	var count int64
	if err := base().Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}

	profiles := []models.Profile{}
	if err := base().
		Order("created_at DESC").Order("id ASC").
		Offset(f.Page.Offset()).Limit(f.Page.Size).
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("filter profiles: %w", err)
	}

	locs, err := ProfileLocations(ctx, db)
	if err != nil {
		return nil, err
	}

	metrics.ObserveSearch("profiles", count)
	return &ProfileResults{
		Profiles:      profiles,
		Cities:        locs.Cities,
		Neighborhoods: locs.Neighborhoods,
		Count:         count,
		Page:          f.Page,
	}, nil
}
