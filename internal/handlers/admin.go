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
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AdminGetStats(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	counts := []struct {
		key   string
		model interface{}
		where []interface{}
	}{
		{"users", &models.User{}, nil},
		{"profiles", &models.Profile{}, nil},
		{"lookingForRoom", &models.Profile{}, []interface{}{"is_looking_for_room = ?", true}},
		{"rooms", &models.Room{}, nil},
		{"activeRooms", &models.Room{}, []interface{}{"is_active = ?", true}},
		{"contacts", &models.Contact{}, nil},
		{"unreadContacts", &models.Contact{}, []interface{}{"is_read = ?", false}},
		{"messages", &models.Message{}, nil},
		{"reviews", &models.RoomReview{}, nil},
		{"pendingVerifications", &models.RoomVerification{}, []interface{}{"status = ?", models.VerificationPending}},
	}

	stats := gin.H{}
	for _, cnt := range counts {
		var n int64
		q := db.Model(cnt.model)
		if cnt.where != nil {
			q = q.Where(cnt.where[0], cnt.where[1:]...)
		}
		if err := q.Count(&n).Error; err != nil {
			abortDB(c, err, "", "")
			return
		}
		stats[cnt.key] = n
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

type VerificationInput struct {
	Status string `json:"status" binding:"required,oneof=pending verified rejected"`
	Note   string `json:"note" binding:"max=1000"`
}

// AdminSetVerification creates or updates the room's verification record.
func AdminSetVerification(c *gin.Context) {
	room, ok := loadRoom(c)
	if !ok {
		return
	}
	var input VerificationInput
	if !bindJSON(c, &input) {
		return
	}

	ctx := c.Request.Context()
	adminID := middleware.CurrentUserID(c)
	db := database.DB.WithContext(ctx)

	var v models.RoomVerification
	err := db.Where("room_id = ?", room.ID).First(&v).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		abortDB(c, err, "", "")
		return
	}
	v.RoomID = room.ID
	v.Status = models.VerificationStatus(input.Status)
	v.Note = strings.TrimSpace(input.Note)
	v.VerifiedBy = nil
	v.VerifiedAt = nil
	if v.Status != models.VerificationPending {
		now := time.Now()
		v.VerifiedBy = &adminID
		v.VerifiedAt = &now
	}
	if err := db.Save(&v).Error; err != nil {
		abortDB(c, err, "", "Verification already exists")
		return
	}

	services.RecordAdminAction(ctx, database.DB, adminID, models.ActionVerifyRoom, "room", room.ID,
		map[string]interface{}{"status": v.Status})
	c.JSON(http.StatusOK, gin.H{"verification": v})
}

type RoomActiveInput struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func AdminSetRoomActive(c *gin.Context) {
	room, ok := loadRoom(c)
	if !ok {
		return
	}
	var input RoomActiveInput
	if !bindJSON(c, &input) {
		return
	}

	ctx := c.Request.Context()
	if err := database.DB.WithContext(ctx).Model(room).Update("is_active", *input.IsActive).Error; err != nil {
		abortDB(c, err, "Room not found", "")
		return
	}
	services.InvalidateLookups(ctx)
	services.RecordAdminAction(ctx, database.DB, middleware.CurrentUserID(c), models.ActionSetRoomActive, "room", room.ID,
		map[string]interface{}{"isActive": *input.IsActive})
	c.JSON(http.StatusOK, gin.H{"room": room})
}

type NamedLookupInput struct {
	Name string `json:"name" binding:"required,max=100"`
}

func bindLookupName(c *gin.Context) (string, bool) {
	var input NamedLookupInput
	if !bindJSON(c, &input) {
		return "", false
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return "", false
	}
	return name, true
}

func AdminCreateRoomType(c *gin.Context) {
	name, ok := bindLookupName(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	rt := models.RoomType{Name: name}
	if err := database.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		abortDB(c, err, "", "A room type with this name already exists")
		return
	}
	services.RecordAdminAction(ctx, database.DB, middleware.CurrentUserID(c), models.ActionCreateRoomType, "room_type", rt.ID,
		map[string]interface{}{"name": rt.Name})
	c.JSON(http.StatusCreated, gin.H{"roomType": rt})
}

func AdminListRoomTypes(c *gin.Context) {
	roomTypes := []models.RoomType{}
	if err := database.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&roomTypes).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomTypes": roomTypes})
}

func AdminCreateAmenity(c *gin.Context) {
	name, ok := bindLookupName(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	a := models.Amenity{Name: name}
	if err := database.DB.WithContext(ctx).Create(&a).Error; err != nil {
		abortDB(c, err, "", "An amenity with this name already exists")
		return
	}
	services.RecordAdminAction(ctx, database.DB, middleware.CurrentUserID(c), models.ActionCreateAmenity, "amenity", a.ID,
		map[string]interface{}{"name": a.Name})
	c.JSON(http.StatusCreated, gin.H{"amenity": a})
}

func AdminListAmenities(c *gin.Context) {
	amenities := []models.Amenity{}
	if err := database.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&amenities).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"amenities": amenities})
}

// AdminListContacts pages through every contact request, newest first.
func AdminListContacts(c *gin.Context) {
	page := services.ParsePage(c.Request.URL.Query())
	db := database.DB.WithContext(c.Request.Context())

	var total int64
	if err := db.Model(&models.Contact{}).Count(&total).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	contacts := []models.Contact{}
	if err := db.Order("created_at DESC, id ASC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&contacts).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "count": total, "pagination": page})
}

// AdminGetAuditLogs returns the most recent admin actions.
func AdminGetAuditLogs(c *gin.Context) {
	logs := []models.AdminAction{}
	if err := database.DB.WithContext(c.Request.Context()).
		Order("created_at DESC").Limit(100).Find(&logs).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
