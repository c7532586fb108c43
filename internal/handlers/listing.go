package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/appnity/roommate-finder/internal/services"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/gin-gonic/gin"
)

func roomFilter(c *gin.Context) services.RoomFilter {
	f := services.ParseRoomFilter(c.Request.URL.Query())
	if !middleware.IsAdmin(c) {
		f.IncludeInactive = false
	}
	return f
}

// GetProfiles is the profile filter pipeline over the query string.
func GetProfiles(c *gin.Context) {
	res, err := services.FilterProfiles(c.Request.Context(), database.DB, Regions,
		services.ParseProfileFilter(c.Request.URL.Query()))
	if err != nil {
		logger.Error().Err(err).Msg("Profile search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search profiles"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func GetRooms(c *gin.Context) {
	res, err := services.FilterRooms(c.Request.Context(), database.DB, Regions, roomFilter(c))
	if err != nil {
		logger.Error().Err(err).Msg("Room search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search rooms"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetListings runs both pipelines with the same query string.
func GetListings(c *gin.Context) {
	ctx := c.Request.Context()
	profiles, err := services.FilterProfiles(ctx, database.DB, Regions,
		services.ParseProfileFilter(c.Request.URL.Query()))
	if err != nil {
		logger.Error().Err(err).Msg("Listing profile search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}
	rooms, err := services.FilterRooms(ctx, database.DB, Regions, roomFilter(c))
	if err != nil {
		logger.Error().Err(err).Msg("Listing room search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "rooms": rooms})
}

// GetLookups returns the values a search form offers.
func GetLookups(c *gin.Context) {
	ctx := c.Request.Context()
	profileLocs, err := services.ProfileLocations(ctx, database.DB)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load profile locations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lookups"})
		return
	}
	roomLocs, err := services.RoomLocations(ctx, database.DB)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load room locations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lookups"})
		return
	}

	var roomTypes []models.RoomType
	var amenities []models.Amenity
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&roomTypes).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&amenities).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}

	regionList := []regions.Region{}
	defaultRegion := ""
	if Regions != nil {
		regionList = append(regionList, Regions.Regions...)
		defaultRegion = Regions.DefaultSlug
	}

	c.JSON(http.StatusOK, gin.H{
		"cities":        mergeSorted(profileLocs.Cities, roomLocs.Cities),
		"neighborhoods": mergeSorted(profileLocs.Neighborhoods, roomLocs.Neighborhoods),
		"roomTypes":     roomTypes,
		"amenities":     amenities,
		"regions":       regionList,
		"defaultRegion": defaultRegion,
	})
}

// mergeSorted unions the lists, dropping case-insensitive duplicates.
func mergeSorted(lists ...[]string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, list := range lists {
		for _, v := range list {
			key := strings.ToLower(v)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
