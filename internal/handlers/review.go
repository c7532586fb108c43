package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	apperrors "github.com/appnity/roommate-finder/pkg/errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// CreateReview posts the caller's profile review of a room. One per room.
func CreateReview(c *gin.Context) {
	room, ok := loadVisibleRoom(c)
	if !ok {
		return
	}
	var input ReviewInput
	if !bindJSON(c, &input) {
		return
	}

	ctx := c.Request.Context()
	reviewer, err := currentProfile(ctx, database.DB, middleware.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		abortWith(c, apperrors.BadRequest("Create your profile before reviewing rooms"))
		return
	}
	if err != nil {
		abortDB(c, err, "", "")
		return
	}
	if reviewer.ID == room.OwnerID {
		abortWith(c, apperrors.Forbidden("You cannot review your own room"))
		return
	}

	review := models.RoomReview{
		RoomID:     room.ID,
		ReviewerID: reviewer.ID,
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := database.DB.WithContext(ctx).Create(&review).Error; err != nil {
		abortDB(c, err, "", "You have already reviewed this room")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func DeleteReview(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	var review models.RoomReview
	if err := db.Preload("Reviewer").First(&review, "id = ?", c.Param("id")).Error; err != nil {
		abortDB(c, err, "Review not found", "")
		return
	}
	if !middleware.IsAdmin(c) && (review.Reviewer == nil || !review.Reviewer.OwnedBy(middleware.CurrentUserID(c))) {
		abortWith(c, apperrors.Forbidden("You can only delete your own reviews"))
		return
	}
	if err := db.Delete(&review).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
