package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/validation"
	apperrors "github.com/appnity/roommate-finder/pkg/errors"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required,personname,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Message string `json:"message" binding:"required"`
}

// CreateContact sends an enquiry to a profile. Anonymous senders are allowed.
func CreateContact(c *gin.Context) {
	p, ok := loadProfile(c)
	if !ok {
		return
	}
	var input ContactInput
	if !bindJSON(c, &input) {
		return
	}

	message := strings.TrimSpace(input.Message)
	if err := validation.Var(message, "min=10,max=1000"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must be between 10 and 1000 characters"})
		return
	}

	contact := models.Contact{
		ProfileID: p.ID,
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Message:   message,
	}
	if uid := middleware.CurrentUserID(c); uid != "" {
		contact.SenderUserID = &uid
	}

	if err := database.DB.WithContext(c.Request.Context()).Create(&contact).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}

	if p.UserID != nil {
		NotifyUser(*p.UserID, "new_contact", gin.H{"contact": contact})
	}
	logger.Info().Str("profile_id", p.ID).Str("contact_id", contact.ID).Msg("Contact request sent")
	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

// GetMyContacts lists enquiries received by the caller's profile, newest first.
// ?unread=true limits it to unread ones.
func GetMyContacts(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := currentProfile(ctx, database.DB, middleware.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"contacts": []models.Contact{}})
		return
	}
	if err != nil {
		abortDB(c, err, "", "")
		return
	}

	q := database.DB.WithContext(ctx).Where("profile_id = ?", p.ID)
	if c.Query("unread") == "true" {
		q = q.Where("is_read = ?", false)
	}
	contacts := []models.Contact{}
	if err := q.Order("created_at DESC").Find(&contacts).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func MarkContactRead(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	var contact models.Contact
	if err := db.First(&contact, "id = ?", c.Param("id")).Error; err != nil {
		abortDB(c, err, "Contact not found", "")
		return
	}
	var p models.Profile
	if err := db.First(&p, "id = ?", contact.ProfileID).Error; err != nil {
		abortDB(c, err, "Contact not found", "")
		return
	}
	if !canEditProfile(c, &p) {
		abortWith(c, apperrors.Forbidden("Access denied"))
		return
	}

	if err := db.Model(&contact).Update("is_read", true).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	contact.IsRead = true
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}
