package handlers

import (
	"net/http"
	"time"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/services"
	apperrors "github.com/appnity/roommate-finder/pkg/errors"
	"github.com/gin-gonic/gin"
)

type AvailabilityInput struct {
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

func AddAvailability(c *gin.Context) {
	room, ok := loadEditableRoom(c)
	if !ok {
		return
	}
	var input AvailabilityInput
	if !bindJSON(c, &input) {
		return
	}
	start, _ := time.Parse(services.DateLayout, input.StartDate)
	end, _ := time.Parse(services.DateLayout, input.EndDate)
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not be before startDate"})
		return
	}

	window := models.RoomAvailability{RoomID: room.ID, StartDate: start, EndDate: end}
	if err := database.DB.WithContext(c.Request.Context()).Create(&window).Error; err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"availability": window})
}

func DeleteAvailability(c *gin.Context) {
	room, ok := loadEditableRoom(c)
	if !ok {
		return
	}
	res := database.DB.WithContext(c.Request.Context()).
		Where("id = ? AND room_id = ?", c.Param("availabilityId"), room.ID).
		Delete(&models.RoomAvailability{})
	if res.Error != nil {
		abortDB(c, res.Error, "", "")
		return
	}
	if res.RowsAffected == 0 {
		abortWith(c, apperrors.NotFound("Availability window not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability removed"})
}
