package handlers

import (
	"net/http"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRoom is idempotent: favoriting twice keeps one row.
func FavoriteRoom(c *gin.Context) {
	room, ok := loadVisibleRoom(c)
	if !ok {
		return
	}
	fav := models.RoomFavorite{UserID: middleware.CurrentUserID(c), RoomID: room.ID}
	err := database.DB.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
	if err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": true})
}

func UnfavoriteRoom(c *gin.Context) {
	room, ok := loadRoom(c)
	if !ok {
		return
	}
	err := database.DB.WithContext(c.Request.Context()).
		Where("user_id = ? AND room_id = ?", middleware.CurrentUserID(c), room.ID).
		Delete(&models.RoomFavorite{}).Error
	if err != nil {
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": false})
}

// GetMyFavorites lists favorited rooms that are still active, newest favorite first.
func GetMyFavorites(c *gin.Context) {
	favorites := []models.RoomFavorite{}
	err := database.DB.WithContext(c.Request.Context()).
		Joins("JOIN rooms ON rooms.id = room_favorites.room_id AND rooms.is_active = ?", true).
		Preload("Room").
		Preload("Room.Images", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, created_at ASC") }).
		Where("room_favorites.user_id = ?", middleware.CurrentUserID(c)).
		Order("room_favorites.created_at DESC").
		Find(&favorites).Error
	if err != nil {
		abortDB(c, err, "", "")
		return
	}

	rooms := make([]models.Room, 0, len(favorites))
	for _, f := range favorites {
		if f.Room != nil {
			rooms = append(rooms, *f.Room)
		}
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
