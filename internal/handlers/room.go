package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/services"
	apperrors "github.com/appnity/roommate-finder/pkg/errors"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// decimal(10,2)
var maxRoomPrice = decimal.RequireFromString("99999999.99")

type RoomInput struct {
	Title          string          `json:"title" binding:"required,max=200"`
	Description    string          `json:"description" binding:"max=5000"`
	City           string          `json:"city" binding:"max=100"`
	Neighborhood   string          `json:"neighborhood" binding:"max=100"`
	Price          decimal.Decimal `json:"price"`
	AvailableFrom  string          `json:"availableFrom" binding:"omitempty,datetime=2006-01-02"`
	RoomTypeID     *string         `json:"roomTypeId" binding:"omitempty,uuid"`
	AmenityIDs     []string        `json:"amenityIds" binding:"omitempty,dive,uuid"`
	HalalKitchen   *bool           `json:"halalKitchen"`
	PrayerFriendly *bool           `json:"prayerFriendly"`
	GuestsAllowed  *bool           `json:"guestsAllowed"`
	IsActive       *bool           `json:"isActive"`
	ContactEmail   string          `json:"contactEmail" binding:"omitempty,email,max=254"`
}

// validPrice accepts positive amounts with at most two fraction digits.
func validPrice(p decimal.Decimal) bool {
	return p.IsPositive() && p.Equal(p.Round(2)) && p.LessThanOrEqual(maxRoomPrice)
}

func (in RoomInput) apply(r *models.Room) {
	r.Title = strings.TrimSpace(in.Title)
	r.Description = strings.TrimSpace(in.Description)
	r.City = strings.TrimSpace(in.City)
	r.Neighborhood = strings.TrimSpace(in.Neighborhood)
	r.Price = in.Price.Round(2)
	r.RoomTypeID = in.RoomTypeID
	r.RoomType = nil
	r.ContactEmail = strings.TrimSpace(in.ContactEmail)

	r.AvailableFrom = nil
	if in.AvailableFrom != "" {
		if t, err := time.Parse(services.DateLayout, in.AvailableFrom); err == nil {
			r.AvailableFrom = &t
		}
	}

	setBool(&r.HalalKitchen, in.HalalKitchen)
	setBool(&r.PrayerFriendly, in.PrayerFriendly)
	setBool(&r.GuestsAllowed, in.GuestsAllowed)
	setBool(&r.IsActive, in.IsActive)
}

// resolveRefs checks the room type and loads the amenities named by the input.
func resolveRefs(c *gin.Context, db *gorm.DB, in RoomInput) ([]models.Amenity, bool) {
	if in.RoomTypeID != nil {
		var count int64
		if err := db.Model(&models.RoomType{}).Where("id = ?", *in.RoomTypeID).Count(&count).Error; err != nil {
			abortDB(c, err, "", "")
			return nil, false
		}
		if count == 0 {
			abortWith(c, apperrors.BadRequest("Unknown room type"))
			return nil, false
		}
	}

	amenities := []models.Amenity{}
	if len(in.AmenityIDs) == 0 {
		return amenities, true
	}
	ids := dedupe(in.AmenityIDs)
	if err := db.Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		abortDB(c, err, "", "")
		return nil, false
	}
	if len(amenities) != len(ids) {
		abortWith(c, apperrors.BadRequest("Unknown amenity"))
		return nil, false
	}
	return amenities, true
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func loadRoom(c *gin.Context) (*models.Room, bool) {
	var room models.Room
	if err := byIDOrSlug(database.DB.WithContext(c.Request.Context()), c.Param("id")).First(&room).Error; err != nil {
		abortDB(c, err, "Room not found", "")
		return nil, false
	}
	return &room, true
}

func loadEditableRoom(c *gin.Context) (*models.Room, bool) {
	room, ok := loadRoom(c)
	if !ok {
		return nil, false
	}
	editable, err := canEditRoom(c, database.DB, room)
	if err != nil {
		abortDB(c, err, "", "")
		return nil, false
	}
	if !editable {
		abortWith(c, apperrors.Forbidden("You can only modify your own rooms"))
		return nil, false
	}
	return room, true
}

// loadVisibleRoom hides inactive rooms from everyone but their owner and admins.
func loadVisibleRoom(c *gin.Context) (*models.Room, bool) {
	room, ok := loadRoom(c)
	if !ok {
		return nil, false
	}
	if room.IsActive {
		return room, true
	}
	editable, err := canEditRoom(c, database.DB, room)
	if err != nil {
		abortDB(c, err, "", "")
		return nil, false
	}
	if !editable {
		abortWith(c, apperrors.NotFound("Room not found"))
		return nil, false
	}
	return room, true
}

func CreateRoom(c *gin.Context) {
	var input RoomInput
	if !bindJSON(c, &input) {
		return
	}
	if !validPrice(input.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than 0 with at most 2 decimal places"})
		return
	}

	ctx := c.Request.Context()
	owner, err := currentProfile(ctx, database.DB, middleware.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		abortWith(c, apperrors.BadRequest("Create your profile before listing a room"))
		return
	}
	if err != nil {
		abortDB(c, err, "", "")
		return
	}

	db := database.DB.WithContext(ctx)
	amenities, ok := resolveRefs(c, db, input)
	if !ok {
		return
	}

	room := models.Room{OwnerID: owner.ID, GuestsAllowed: true, IsActive: true}
	input.apply(&room)
	room.Amenities = amenities
	if room.ContactEmail == "" {
		room.ContactEmail = owner.ContactEmail
	}

	if room.Slug, err = services.RoomSlug(ctx, database.DB, room.Title); err != nil {
		abortDB(c, err, "", "")
		return
	}
	if err := db.Create(&room).Error; err != nil {
		abortDB(c, err, "", "A room with this slug already exists")
		return
	}
	services.InvalidateLookups(ctx)

	logger.Info().Str("room_id", room.ID).Str("owner_id", owner.ID).Msg("Room created")
	c.JSON(http.StatusCreated, gin.H{"room": room})
}

// GetRoom returns the room with images, amenities, type, owner, availability,
// verification and reviews with their average rating.
func GetRoom(c *gin.Context) {
	room, ok := loadVisibleRoom(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	err := database.DB.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Preload("Availability", func(db *gorm.DB) *gorm.DB { return db.Order("start_date ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reviews.Reviewer").
		Preload("RoomType").
		Preload("Amenities").
		Preload("Verification").
		Preload("Owner").
		First(room, "id = ?", room.ID).Error
	if err != nil {
		abortDB(c, err, "Room not found", "")
		return
	}

	var average *float64
	if n := len(room.Reviews); n > 0 {
		total := 0
		for _, r := range room.Reviews {
			total += r.Rating
		}
		avg := float64(total) / float64(n)
		average = &avg
	}

	resp := gin.H{
		"room":          room,
		"averageRating": average,
		"reviewCount":   len(room.Reviews),
	}
	if uid := middleware.CurrentUserID(c); uid != "" {
		var count int64
		database.DB.WithContext(ctx).Model(&models.RoomFavorite{}).
			Where("user_id = ? AND room_id = ?", uid, room.ID).Count(&count)
		resp["isFavorite"] = count > 0
	}
	c.JSON(http.StatusOK, resp)
}

func UpdateRoom(c *gin.Context) {
	room, ok := loadEditableRoom(c)
	if !ok {
		return
	}
	var input RoomInput
	if !bindJSON(c, &input) {
		return
	}
	if !validPrice(input.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than 0 with at most 2 decimal places"})
		return
	}

	ctx := c.Request.Context()
	db := database.DB.WithContext(ctx)
	amenities, ok := resolveRefs(c, db, input)
	if !ok {
		return
	}
	input.apply(room)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Amenities").Save(room).Error; err != nil {
			return err
		}
		if input.AmenityIDs != nil {
			return tx.Model(room).Association("Amenities").Replace(amenities)
		}
		return nil
	})
	if err != nil {
		abortDB(c, err, "Room not found", "")
		return
	}
	services.InvalidateLookups(ctx)

	if err := db.Preload("Amenities").Preload("RoomType").First(room, "id = ?", room.ID).Error; err != nil {
		abortDB(c, err, "Room not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

func DeleteRoom(c *gin.Context) {
	room, ok := loadEditableRoom(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	keys, err := services.DeleteRoom(ctx, database.DB, room.ID)
	if err != nil {
		logger.Error().Err(err).Str("room_id", room.ID).Msg("Failed to delete room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}
	deleteObjects(ctx, keys)
	services.InvalidateLookups(ctx)

	if middleware.IsAdmin(c) {
		services.RecordAdminAction(ctx, database.DB, middleware.CurrentUserID(c), models.ActionDeleteRoom, "room", room.ID,
			map[string]interface{}{"slug": room.Slug})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// GetMyRooms lists the caller's rooms, inactive ones included.
func GetMyRooms(c *gin.Context) {
	ctx := c.Request.Context()
	rooms := []models.Room{}
	p, err := currentProfile(ctx, database.DB, middleware.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
		return
	}
	if err != nil {
		abortDB(c, err, "", "")
		return
	}

	if err := database.DB.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Preload("Verification").
		Where("owner_id = ?", p.ID).
		Order("created_at DESC").
		Find(&rooms).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
