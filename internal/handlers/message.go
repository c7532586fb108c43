package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/models"
	apperrors "github.com/appnity/roommate-finder/pkg/errors"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/gin-gonic/gin"
)

const conversationScanLimit = 500

type SendMessageInput struct {
	RecipientID string  `json:"recipientId" binding:"required"`
	Content     string  `json:"content" binding:"required,max=2000"`
	RoomID      *string `json:"roomId"`
}

// Conversation is the latest message exchanged with one partner.
type Conversation struct {
	User        models.User    `json:"user"`
	LastMessage models.Message `json:"lastMessage"`
	UnreadCount int64          `json:"unreadCount"`
}

func SendMessage(c *gin.Context) {
	senderID := middleware.CurrentUserID(c)
	var input SendMessageInput
	if !bindJSON(c, &input) {
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	if input.RecipientID == senderID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot message yourself"})
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var recipient models.User
	if err := db.Select("id").First(&recipient, "id = ?", input.RecipientID).Error; err != nil {
		abortDB(c, err, "Recipient not found", "")
		return
	}
	if input.RoomID != nil {
		var room models.Room
		if err := db.Select("id").First(&room, "id = ?", *input.RoomID).Error; err != nil {
			abortDB(c, err, "Room not found", "")
			return
		}
	}

	msg := models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		RoomID:      input.RoomID,
		Content:     content,
	}
	if err := db.Create(&msg).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to send message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	db.Preload("Sender").Preload("Recipient").First(&msg, "id = ?", msg.ID)

	data := map[string]interface{}{"message": msg}
	NotifyUser(msg.RecipientID, "receive_message", data)
	// Multi-device sync for the sender
	NotifyUser(msg.SenderID, "receive_message", data)

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetMessages returns the thread with ?userId in chronological order.
func GetMessages(c *gin.Context) {
	currentUserID := middleware.CurrentUserID(c)
	otherUserID := c.Query("userId")
	if otherUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	messages := []models.Message{}
	err := database.DB.WithContext(c.Request.Context()).Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		currentUserID, otherUserID, otherUserID, currentUserID,
	).Order("created_at ASC, id ASC").Preload("Sender").Preload("Recipient").Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetConversations lists conversation partners by most recent message.
func GetConversations(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	db := database.DB.WithContext(c.Request.Context())

	var recent []models.Message
	if err := db.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Limit(conversationScanLimit).
		Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	var unreadRows []struct {
		SenderID string
		Count    int64
	}
	if err := db.Model(&models.Message{}).
		Select("sender_id, COUNT(*) AS count").
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Group("sender_id").
		Scan(&unreadRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}
	unread := make(map[string]int64, len(unreadRows))
	for _, row := range unreadRows {
		unread[row.SenderID] = row.Count
	}

	conversations := []Conversation{}
	index := map[string]int{}
	partnerIDs := []string{}
	for _, m := range recent {
		partner := m.SenderID
		if partner == userID {
			partner = m.RecipientID
		}
		if _, seen := index[partner]; seen {
			continue
		}
		index[partner] = len(conversations)
		partnerIDs = append(partnerIDs, partner)
		conversations = append(conversations, Conversation{
			User:        models.User{ID: partner},
			LastMessage: m,
			UnreadCount: unread[partner],
		})
	}

	if len(partnerIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", partnerIDs).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
			return
		}
		for _, u := range users {
			conversations[index[u.ID]].User = u
		}
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// MarkRead marks every message from :senderId to the caller as read.
func MarkRead(c *gin.Context) {
	currentUserID := middleware.CurrentUserID(c)
	senderID := c.Param("senderId")
	if senderID == "" {
		abortWith(c, apperrors.BadRequest("senderId required"))
		return
	}

	result := database.DB.WithContext(c.Request.Context()).Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", senderID, currentUserID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark read"})
		return
	}

	if result.RowsAffected > 0 {
		NotifyUser(senderID, "message_read", map[string]interface{}{"senderId": currentUserID})
	}
	c.JSON(http.StatusOK, gin.H{"markedRead": result.RowsAffected})
}
