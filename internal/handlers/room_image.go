package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/appnity/roommate-finder/internal/config"
	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/services"
	"github.com/appnity/roommate-finder/internal/storage"
	apperrors "github.com/appnity/roommate-finder/pkg/errors"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/gin-gonic/gin"
)

type RoomImageInput struct {
	URL       string `json:"url" binding:"required,url"`
	Caption   string `json:"caption" binding:"max=200"`
	IsPrimary bool   `json:"isPrimary"`
}

func ownStorageHost() string {
	if config.AppConfig == nil {
		return ""
	}
	return storage.PublicHost(config.AppConfig.R2PublicURL)
}

// AddRoomImage accepts either a multipart upload (field "image" or "file")
// that is stored in object storage, or a JSON body pointing at an image URL.
func AddRoomImage(c *gin.Context) {
	room, ok := loadEditableRoom(c)
	if !ok {
		return
	}

	img := models.RoomImage{RoomID: room.ID}
	var primary bool
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if !uploadRoomImage(c, room.ID, &img) {
			return
		}
		img.Caption = strings.TrimSpace(c.PostForm("caption"))
		primary = c.PostForm("isPrimary") == "true"
	} else {
		var input RoomImageInput
		if !bindJSON(c, &input) {
			return
		}
		if err := storage.ValidateImageURL(input.URL, ownStorageHost()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		img.URL = input.URL
		img.Caption = strings.TrimSpace(input.Caption)
		primary = input.IsPrimary
	}
	if len(img.Caption) > 200 {
		img.Caption = img.Caption[:200]
	}

	ctx := c.Request.Context()
	if err := services.AddRoomImage(ctx, database.DB, &img, primary); err != nil {
		deleteObjects(ctx, []string{img.StorageKey})
		abortDB(c, err, "", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image": img})
}

func formImage(c *gin.Context) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		file, header, err = c.Request.FormFile("file")
	}
	return file, header, err
}

// uploadRoomImage sniffs and stores the uploaded file, filling img's URL and
// storage key.
func uploadRoomImage(c *gin.Context, roomID string, img *models.RoomImage) bool {
	if Store == nil {
		abortWith(c, apperrors.NewAppError(http.StatusServiceUnavailable, "Image uploads are not configured"))
		return false
	}

	file, header, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file found"})
		return false
	}
	defer file.Close()

	if header.Size > storage.MaxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image must be 5MB or smaller"})
		return false
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image"})
		return false
	}
	contentType, err := storage.DetectImageType(head[:n])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image"})
		return false
	}

	key := storage.RoomImageKey(roomID, "image"+storage.ExtensionFor(contentType))
	url, err := Store.Put(c.Request.Context(), key, file, contentType)
	if err != nil {
		logger.Error().Err(err).Str("room_id", roomID).Msg("Image upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upload failed"})
		return false
	}
	img.URL = url
	img.StorageKey = key
	return true
}

func DeleteRoomImage(c *gin.Context) {
	room, ok := loadEditableRoom(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	img, err := services.DeleteRoomImage(ctx, database.DB, room.ID, c.Param("imageId"))
	if err != nil {
		abortDB(c, err, "Image not found", "")
		return
	}
	deleteObjects(ctx, []string{img.StorageKey})
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

func SetPrimaryRoomImage(c *gin.Context) {
	room, ok := loadEditableRoom(c)
	if !ok {
		return
	}
	if err := services.SetPrimaryImage(c.Request.Context(), database.DB, room.ID, c.Param("imageId")); err != nil {
		abortDB(c, err, "Image not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Primary image updated"})
}
