package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/services"
	apperrors "github.com/appnity/roommate-finder/pkg/errors"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileInput struct {
	Name             string `json:"name" binding:"required,personname,max=100"`
	Age              *int   `json:"age" binding:"omitempty,gte=0,lte=120"`
	Gender           string `json:"gender" binding:"omitempty,gender"`
	City             string `json:"city" binding:"max=100"`
	State            string `json:"state" binding:"max=50"`
	Neighborhood     string `json:"neighborhood" binding:"max=100"`
	ZipCode          string `json:"zipCode" binding:"max=20"`
	IsLookingForRoom *bool  `json:"isLookingForRoom"`
	HalalKitchen     *bool  `json:"halalKitchen"`
	PrayerFriendly   *bool  `json:"prayerFriendly"`
	GuestsAllowed    *bool  `json:"guestsAllowed"`
	Bio              string `json:"bio" binding:"max=2000"`
	ContactEmail     string `json:"contactEmail" binding:"omitempty,email,max=254"`
}

// apply copies the input onto p. Booleans left out of the body keep their
// current value.
func (in ProfileInput) apply(p *models.Profile) {
	p.Name = strings.TrimSpace(in.Name)
	p.Age = in.Age
	p.Gender, _ = models.ParseGender(in.Gender)
	p.City = strings.TrimSpace(in.City)
	p.State = strings.TrimSpace(in.State)
	p.Neighborhood = strings.TrimSpace(in.Neighborhood)
	p.ZipCode = strings.TrimSpace(in.ZipCode)
	p.Bio = strings.TrimSpace(in.Bio)
	p.ContactEmail = strings.TrimSpace(in.ContactEmail)

	setBool(&p.IsLookingForRoom, in.IsLookingForRoom)
	setBool(&p.HalalKitchen, in.HalalKitchen)
	setBool(&p.PrayerFriendly, in.PrayerFriendly)
	setBool(&p.GuestsAllowed, in.GuestsAllowed)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func loadProfile(c *gin.Context) (*models.Profile, bool) {
	var p models.Profile
	if err := byIDOrSlug(database.DB.WithContext(c.Request.Context()), c.Param("id")).First(&p).Error; err != nil {
		abortDB(c, err, "Profile not found", "")
		return nil, false
	}
	return &p, true
}

func loadEditableProfile(c *gin.Context) (*models.Profile, bool) {
	p, ok := loadProfile(c)
	if !ok {
		return nil, false
	}
	if !canEditProfile(c, p) {
		abortWith(c, apperrors.Forbidden("You can only modify your own profile"))
		return nil, false
	}
	return p, true
}

// CreateProfile lets a user without a profile create one. Admins create
// unowned profiles.
func CreateProfile(c *gin.Context) {
	var input ProfileInput
	if !bindJSON(c, &input) {
		return
	}

	ctx := c.Request.Context()
	uid := middleware.CurrentUserID(c)
	profile := models.Profile{GuestsAllowed: true}
	if !middleware.IsAdmin(c) {
		if _, err := currentProfile(ctx, database.DB, uid); err == nil {
			abortWith(c, apperrors.Conflict("You already have a profile"))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			abortDB(c, err, "", "")
			return
		}
		profile.UserID = &uid
	}
	input.apply(&profile)

	slug, err := services.ProfileSlug(ctx, database.DB, profile.Name)
	if err != nil {
		abortDB(c, err, "", "")
		return
	}
	profile.Slug = slug

	if err := database.DB.WithContext(ctx).Create(&profile).Error; err != nil {
		abortDB(c, err, "", "A profile with this slug already exists")
		return
	}
	services.InvalidateLookups(ctx)

	logger.Info().Str("profile_id", profile.ID).Str("user_id", uid).Msg("Profile created")
	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// GetProfile returns the profile with its roommate details, rooms and up to
// three similar profiles. Inactive rooms are shown to the owner only.
func GetProfile(c *gin.Context) {
	p, ok := loadProfile(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	q := database.DB.WithContext(ctx).Preload("RoommateProfile")
	roomImages := func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }
	if canEditProfile(c, p) {
		q = q.Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") })
	} else {
		q = q.Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("created_at DESC")
		})
	}
	if err := q.Preload("Rooms.Images", roomImages).First(p, "id = ?", p.ID).Error; err != nil {
		abortDB(c, err, "Profile not found", "")
		return
	}

	similar, err := services.FindSimilar(ctx, database.DB, Regions, p)
	if err != nil {
		logger.Error().Err(err).Str("profile_id", p.ID).Msg("Similar profile lookup failed")
		similar = []services.SimilarProfile{}
	}

	c.JSON(http.StatusOK, gin.H{"profile": p, "similarProfiles": similar})
}

func UpdateProfile(c *gin.Context) {
	p, ok := loadEditableProfile(c)
	if !ok {
		return
	}
	var input ProfileInput
	if !bindJSON(c, &input) {
		return
	}
	input.apply(p)

	ctx := c.Request.Context()
	if err := database.DB.WithContext(ctx).Save(p).Error; err != nil {
		abortDB(c, err, "Profile not found", "")
		return
	}
	services.InvalidateLookups(ctx)
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// DeleteProfile removes the profile and everything it owns. The login
// account survives.
func DeleteProfile(c *gin.Context) {
	p, ok := loadEditableProfile(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	keys, err := services.DeleteProfile(ctx, database.DB, p)
	if err != nil {
		logger.Error().Err(err).Str("profile_id", p.ID).Msg("Failed to delete profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}
	deleteObjects(ctx, keys)
	services.InvalidateLookups(ctx)

	if middleware.IsAdmin(c) && !p.OwnedBy(middleware.CurrentUserID(c)) {
		services.RecordAdminAction(ctx, database.DB, middleware.CurrentUserID(c), models.ActionDeleteProfile, "profile", p.ID,
			map[string]interface{}{"slug": p.Slug})
	}

	logger.Info().Str("profile_id", p.ID).Int("images", len(keys)).Msg("Profile deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted"})
}

type RoommateInput struct {
	Budget     *int   `json:"budget" binding:"omitempty,gte=0"`
	Occupation string `json:"occupation" binding:"max=100"`
}

// UpsertRoommateProfile creates or replaces the roommate details of a profile.
func UpsertRoommateProfile(c *gin.Context) {
	p, ok := loadEditableProfile(c)
	if !ok {
		return
	}
	var input RoommateInput
	if !bindJSON(c, &input) {
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var rp models.RoommateProfile
	err := db.Where("profile_id = ?", p.ID).First(&rp).Error
	status := http.StatusOK
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rp = models.RoommateProfile{ProfileID: p.ID}
		status = http.StatusCreated
	case err != nil:
		abortDB(c, err, "", "")
		return
	}
	rp.Budget = input.Budget
	rp.Occupation = strings.TrimSpace(input.Occupation)

	if err := db.Save(&rp).Error; err != nil {
		abortDB(c, err, "", "Roommate details already exist")
		return
	}
	c.JSON(status, gin.H{"roommateProfile": rp})
}
