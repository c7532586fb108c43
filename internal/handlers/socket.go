package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/appnity/roommate-finder/pkg/utils"
	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
)

var SocketServer *socketio.Server

// Presence tracking: userId -> number of open sockets
var (
	onlineUsers   = make(map[string]int)
	onlineUsersMu sync.RWMutex
)

// Typing throttle per sender
var (
	lastTypingEmit         = make(map[string]time.Time)
	lastTypingMu           sync.Mutex
	typingThrottleDuration = 3 * time.Second
)

func GetOnlineUsers() []string {
	onlineUsersMu.RLock()
	defer onlineUsersMu.RUnlock()

	users := make([]string, 0, len(onlineUsers))
	for userID := range onlineUsers {
		users = append(users, userID)
	}
	return users
}

func IsUserOnline(userID string) bool {
	onlineUsersMu.RLock()
	defer onlineUsersMu.RUnlock()
	return onlineUsers[userID] > 0
}

// NotifyUser pushes an event to every socket of userID. It is a no-op when
// the socket server is not running.
func NotifyUser(userID, event string, payload interface{}) {
	if SocketServer != nil && userID != "" {
		SocketServer.BroadcastToRoom("/", userID, event, payload)
	}
}

func broadcastPresence(userID string, isOnline bool) {
	if SocketServer != nil {
		SocketServer.BroadcastToRoom("/", "presence", "presence_update", map[string]interface{}{
			"userId":   userID,
			"isOnline": isOnline,
		})
	}
}

// allowTyping reports whether senderID may emit another typing event.
func allowTyping(senderID string, now time.Time) bool {
	lastTypingMu.Lock()
	defer lastTypingMu.Unlock()
	if last, ok := lastTypingEmit[senderID]; ok && now.Sub(last) < typingThrottleDuration {
		return false
	}
	lastTypingEmit[senderID] = now
	return true
}

func InitSocketServer() *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		u := s.URL()
		token := u.Query().Get("token")
		if token == "" {
			logger.Debug().Str("socket_id", s.ID()).Msg("Socket rejected: no token")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil || database.IsTokenBlacklisted(claims.GetJTI()) {
			logger.Debug().Str("socket_id", s.ID()).Msg("Socket rejected: invalid token")
			return fmt.Errorf("invalid token")
		}

		userID := claims.UserID
		s.SetContext(userID)

		onlineUsersMu.Lock()
		onlineUsers[userID]++
		first := onlineUsers[userID] == 1
		onlineUsersMu.Unlock()

		// Personal room for messages and contact requests
		s.Join(userID)
		s.Join("presence")

		if first {
			broadcastPresence(userID, true)
		}
		s.Emit("online_users", GetOnlineUsers())
		logger.Debug().Str("socket_id", s.ID()).Str("user_id", userID).Msg("Socket connected")
		return nil
	})

	server.OnEvent("/", "typing", func(s socketio.Conn, data map[string]interface{}) {
		recipientID, _ := data["recipientId"].(string)
		senderID, _ := s.Context().(string)
		if recipientID == "" || senderID == "" || !allowTyping(senderID, time.Now()) {
			return
		}
		server.BroadcastToRoom("/", recipientID, "user_typing", map[string]interface{}{
			"userId":    senderID,
			"expiresAt": time.Now().Add(4 * time.Second).Unix(),
		})
	})

	server.OnEvent("/", "get_online_users", func(s socketio.Conn, msg string) {
		s.Emit("online_users", GetOnlineUsers())
	})

	// Recipient acknowledges reading a message; the sender is told.
	server.OnEvent("/", "message_read", func(s socketio.Conn, data map[string]interface{}) {
		messageID, _ := data["messageId"].(string)
		readerID, _ := s.Context().(string)
		if messageID == "" || readerID == "" {
			return
		}

		var msg models.Message
		if err := database.DB.Select("id", "sender_id").
			Where("id = ? AND recipient_id = ?", messageID, readerID).
			First(&msg).Error; err != nil {
			return
		}
		now := time.Now()
		if err := database.DB.Model(&models.Message{}).Where("id = ?", msg.ID).
			Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error; err != nil {
			logger.Warn().Err(err).Str("message_id", msg.ID).Msg("Failed to mark message read")
			return
		}
		server.BroadcastToRoom("/", msg.SenderID, "message_status", map[string]interface{}{
			"messageId": msg.ID,
			"status":    "read",
		})
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		userID, _ := s.Context().(string)
		if userID == "" {
			return
		}

		onlineUsersMu.Lock()
		onlineUsers[userID]--
		last := onlineUsers[userID] <= 0
		if last {
			delete(onlineUsers, userID)
		}
		onlineUsersMu.Unlock()

		if last {
			broadcastPresence(userID, false)
		}
		logger.Debug().Str("socket_id", s.ID()).Str("reason", reason).Msg("Socket closed")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("Socket error")
	})

	go func() {
		if err := server.Serve(); err != nil {
			logger.Error().Err(err).Msg("Socket server stopped")
		}
	}()
	SocketServer = server
	return server
}

func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
