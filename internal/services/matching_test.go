package services

import (
	"context"
	"testing"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSimilar_NeighborhoodThenCity(t *testing.T) {
	db := newTestDB(t)
	downtown := func(p *models.Profile) { p.City = "Charleston"; p.Neighborhood = "Downtown" }
	target := createProfile(t, db, "target", downtown)
	createProfile(t, db, "n2", downtown)
	createProfile(t, db, "n1", downtown)
	createProfile(t, db, "c1", func(p *models.Profile) { p.City = "Charleston"; p.Neighborhood = "Wagener Terrace" })
	createProfile(t, db, "other", func(p *models.Profile) { p.City = "Atlanta" })

	got, err := FindSimilar(context.Background(), db, charlestonRegistry(), &target)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n2", "c1"}, similarIDs(got))
	assert.Equal(t, []int{TierNeighborhood, TierNeighborhood, TierCity}, []int{got[0].Tier, got[1].Tier, got[2].Tier})
}

func TestFindSimilar_NeighborhoodMatchIsExact(t *testing.T) {
	db := newTestDB(t)
	target := createProfile(t, db, "target", func(p *models.Profile) { p.City = "Charleston"; p.Neighborhood = "Downtown" })
	createProfile(t, db, "lower", func(p *models.Profile) { p.City = "charleston"; p.Neighborhood = "downtown" })

	got, err := FindSimilar(context.Background(), db, regions.New(""), &target)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindSimilar_TierOneTakesAtMostTwo(t *testing.T) {
	db := newTestDB(t)
	downtown := func(p *models.Profile) { p.City = "Charleston"; p.Neighborhood = "Downtown" }
	target := createProfile(t, db, "t", downtown)
	for _, id := range []string{"a", "b", "c", "d"} {
		createProfile(t, db, id, downtown)
	}

	got, err := FindSimilar(context.Background(), db, charlestonRegistry(), &target)
	require.NoError(t, err)
	// tier 1 stops at two, tier 2 (same city) tops up with the next by id
	assert.Equal(t, []string{"a", "b", "c"}, similarIDs(got))
	assert.Equal(t, TierCity, got[2].Tier)
}

func TestFindSimilar_NoNeighborhoodFillsFromCity(t *testing.T) {
	db := newTestDB(t)
	target := createProfile(t, db, "target", func(p *models.Profile) { p.City = "Columbia" })
	for _, id := range []string{"e", "d", "c", "b", "a"} {
		createProfile(t, db, id, func(p *models.Profile) { p.City = "Columbia"; p.Neighborhood = "Five Points" })
	}

	got, err := FindSimilar(context.Background(), db, charlestonRegistry(), &target)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, similarIDs(got))
	for _, s := range got {
		assert.Equal(t, TierCity, s.Tier)
	}
}

func TestFindSimilar_LoneProfileOutsideMetro(t *testing.T) {
	db := newTestDB(t)
	target := createProfile(t, db, "target", func(p *models.Profile) { p.City = "Boise"; p.State = "ID"; p.Neighborhood = "North End" })
	createProfile(t, db, "x", func(p *models.Profile) { p.City = "Charleston" })
	createProfile(t, db, "y", func(p *models.Profile) { p.City = "Greenville" })

	got, err := FindSimilar(context.Background(), db, charlestonRegistry(), &target)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindSimilar_MetroFallback(t *testing.T) {
	db := newTestDB(t)
	target := createProfile(t, db, "target", func(p *models.Profile) { p.City = "Mount Pleasant"; p.State = "SC" })
	createProfile(t, db, "m1", func(p *models.Profile) { p.City = "charleston" })
	createProfile(t, db, "m2", func(p *models.Profile) { p.City = "WEST ASHLEY" })
	createProfile(t, db, "m3", func(p *models.Profile) { p.City = "James Island" })
	createProfile(t, db, "m0", func(p *models.Profile) { p.City = "Mount Pleasant" })
	createProfile(t, db, "far", func(p *models.Profile) { p.City = "Atlanta" })

	got, err := FindSimilar(context.Background(), db, charlestonRegistry(), &target)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "m0", got[0].ID)
	assert.Equal(t, TierCity, got[0].Tier)
	assert.Equal(t, []string{"m1", "m2"}, similarIDs(got[1:]))
	assert.Equal(t, TierMetro, got[1].Tier)
}

func TestFindSimilar_MetroRequiresMatchingState(t *testing.T) {
	db := newTestDB(t)
	target := createProfile(t, db, "target", func(p *models.Profile) { p.City = "Charleston"; p.State = "WV" })
	createProfile(t, db, "sc", func(p *models.Profile) { p.City = "Mount Pleasant"; p.State = "SC" })

	got, err := FindSimilar(context.Background(), db, charlestonRegistry(), &target)
	require.NoError(t, err)
	assert.Empty(t, got)

	// qualifying through the neighborhood list works without a state; the
	// metro tier then matches on city names alone
	target2 := createProfile(t, db, "target2", func(p *models.Profile) { p.City = "Ladson"; p.Neighborhood = "Charleston County" })
	got, err = FindSimilar(context.Background(), db, charlestonRegistry(), &target2)
	require.NoError(t, err)
	assert.Equal(t, []string{"sc", "target"}, similarIDs(got))

	// an empty registry disables the fallback
	got, err = FindSimilar(context.Background(), db, &regions.Registry{}, &target2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindSimilar_Idempotent(t *testing.T) {
	db := newTestDB(t)
	target := createProfile(t, db, "target", func(p *models.Profile) { p.City = "Charleston"; p.Neighborhood = "Downtown"; p.State = "SC" })
	createProfile(t, db, "a", func(p *models.Profile) { p.City = "Charleston"; p.Neighborhood = "Downtown" })
	createProfile(t, db, "b", func(p *models.Profile) { p.City = "West Ashley" })
	createProfile(t, db, "c", func(p *models.Profile) { p.City = "James Island" })
	createProfile(t, db, "d", func(p *models.Profile) { p.City = "Mount Pleasant" })

	first, err := FindSimilar(context.Background(), db, charlestonRegistry(), &target)
	require.NoError(t, err)
	second, err := FindSimilar(context.Background(), db, charlestonRegistry(), &target)
	require.NoError(t, err)

	assert.Equal(t, similarIDs(first), similarIDs(second))
	assert.Equal(t, []string{"a", "b", "c"}, similarIDs(first))
	assert.Len(t, Profiles(first), 3)
}

func TestFindSimilar_NeighborhoodWithoutCity(t *testing.T) {
	db := newTestDB(t)
	target := createProfile(t, db, "target", func(p *models.Profile) { p.Neighborhood = "Downtown" })
	createProfile(t, db, "blank", func(p *models.Profile) { p.Neighborhood = "Downtown" })
	createProfile(t, db, "charleston", func(p *models.Profile) { p.City = "Charleston"; p.Neighborhood = "Downtown" })

	got, err := FindSimilar(context.Background(), db, regions.New(""), &target)
	require.NoError(t, err)
	assert.Equal(t, []string{"blank"}, similarIDs(got))
	assert.Equal(t, TierNeighborhood, got[0].Tier)
}
