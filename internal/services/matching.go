package services

import (
	"context"
	"fmt"

	"github.com/appnity/roommate-finder/internal/metrics"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"gorm.io/gorm"
)

const (
	MaxSimilar        = 3
	maxSameNeighbours = 2
)

const (
	TierNeighborhood = 1
	TierCity         = 2
	TierMetro        = 3
)

// SimilarProfile is a recommended profile and the tier that produced it.
type SimilarProfile struct {
	models.Profile
	Tier int `json:"tier"`
}

// similarCollector accumulates tier results, skipping ids already seen.
type similarCollector struct {
	seen    map[string]bool
	results []SimilarProfile
}

func newSimilarCollector(targetID string) *similarCollector {
	return &similarCollector{seen: map[string]bool{targetID: true}}
}

func (c *similarCollector) full() bool { return len(c.results) >= MaxSimilar }

func (c *similarCollector) remaining() int { return MaxSimilar - len(c.results) }

func (c *similarCollector) excluded() []string {
	ids := make([]string, 0, len(c.seen))
	for id := range c.seen {
		ids = append(ids, id)
	}
	return ids
}

func (c *similarCollector) add(tier int, profiles []models.Profile) {
	for _, p := range profiles {
		if c.full() || c.seen[p.ID] {
			continue
		}
		c.seen[p.ID] = true
		c.results = append(c.results, SimilarProfile{Profile: p, Tier: tier})
		metrics.ObserveSimilarTier(tier)
	}
}

// FindSimilar returns up to three profiles near target, widening from the same
// neighborhood to the same city to the target's metro region. Within a tier
// profiles are taken in id order. The caller must have loaded target.
func FindSimilar(ctx context.Context, db *gorm.DB, reg *regions.Registry, target *models.Profile) ([]SimilarProfile, error) {
	c := newSimilarCollector(target.ID)
	base := func() *gorm.DB {
		return db.WithContext(ctx).Model(&models.Profile{}).Where("id NOT IN ?", c.excluded()).Order("id ASC")
	}

	if target.Neighborhood != "" {
		var same []models.Profile
		if err := base().
			Where("city = ? AND neighborhood = ?", target.City, target.Neighborhood).
			Limit(maxSameNeighbours).Find(&same).Error; err != nil {
			return nil, fmt.Errorf("similar by neighborhood: %w", err)
		}
		c.add(TierNeighborhood, same)
	}

	if !c.full() && target.City != "" {
		var sameCity []models.Profile
		if err := base().
			Where("city = ?", target.City).
			Limit(c.remaining()).Find(&sameCity).Error; err != nil {
			return nil, fmt.Errorf("similar by city: %w", err)
		}
		c.add(TierCity, sameCity)
	}

	if !c.full() {
		if region, ok := reg.RegionFor(target.City, target.State, target.Neighborhood); ok {
			if cities := region.LowerCities(); len(cities) > 0 {
				var metro []models.Profile
				if err := base().
					Where("LOWER(city) IN ?", cities).
					Limit(c.remaining()).Find(&metro).Error; err != nil {
					return nil, fmt.Errorf("similar by metro %s: %w", region.Slug, err)
				}
				c.add(TierMetro, metro)
			}
		}
	}

	if c.results == nil {
		return []SimilarProfile{}, nil
	}
	return c.results, nil
}

// Profiles strips the tier annotation.
func Profiles(similar []SimilarProfile) []models.Profile {
	out := make([]models.Profile, len(similar))
	for i, s := range similar {
		out[i] = s.Profile
	}
	return out
}
