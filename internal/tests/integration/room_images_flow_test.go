package integration

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps uploaded objects in memory.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (s *memStore) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func uploadImage(r *gin.Engine, path, token string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("image", "photo.png")
	part.Write(content)
	mw.WriteField("caption", "Bedroom")
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createRoom(t *testing.T, r *gin.Engine, token, title string) string {
	t.Helper()
	w := performRequest(r, http.MethodPost, "/api/rooms", map[string]interface{}{
		"title": title, "price": "800", "city": "Charleston",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["room"].(map[string]interface{})["id"].(string)
}

func TestRoomImages_UploadPrimaryAndCleanup(t *testing.T) {
	db, r := setupTestDB(t)
	store := newMemStore()
	handlers.Store = store
	t.Cleanup(func() { handlers.Store = nil })

	token, _, _ := registerUser(t, r, "Alice Smith", "alice")
	otherToken, _, _ := registerUser(t, r, "Bob Jones", "bob")
	roomID := createRoom(t, r, token, "Garden flat")
	base := "/api/rooms/" + roomID + "/images"

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	w := uploadImage(r, base, otherToken, png)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = uploadImage(r, base, token, []byte("plain text, not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// First image becomes primary even when not asked for
	w = uploadImage(r, base, token, png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decodeBody(t, w)["image"].(map[string]interface{})
	assert.Equal(t, true, first["isPrimary"])
	assert.Equal(t, "Bedroom", first["caption"])
	assert.Equal(t, 1, store.len())

	w = performRequest(r, http.MethodPost, base, map[string]interface{}{"url": "http://example.com/a.jpg"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = performRequest(r, http.MethodPost, base, map[string]interface{}{"url": "https://example.com/kitchen.jpg"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	second := decodeBody(t, w)["image"].(map[string]interface{})
	assert.Equal(t, false, second["isPrimary"])

	w = performRequest(r, http.MethodPost, base+"/"+second["id"].(string)+"/primary", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var primaries []models.RoomImage
	require.NoError(t, db.Where("room_id = ? AND is_primary = ?", roomID, true).Find(&primaries).Error)
	require.Len(t, primaries, 1)
	assert.Equal(t, second["id"], primaries[0].ID)

	// Deleting the primary promotes the remaining image
	w = performRequest(r, http.MethodDelete, base+"/"+second["id"].(string), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var remaining models.RoomImage
	require.NoError(t, db.First(&remaining, "room_id = ?", roomID).Error)
	assert.Equal(t, first["id"], remaining.ID)
	assert.True(t, remaining.IsPrimary)

	w = performRequest(r, http.MethodDelete, "/api/rooms/"+roomID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.len())
}

func TestRoomImages_UploadWithoutStore(t *testing.T) {
	_, r := setupTestDB(t)
	token, _, _ := registerUser(t, r, "Alice Smith", "alice")
	roomID := createRoom(t, r, token, "Garden flat")

	w := uploadImage(r, "/api/rooms/"+roomID+"/images", token, []byte("\x89PNG\r\n\x1a\n"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoomAvailability(t *testing.T) {
	_, r := setupTestDB(t)
	token, _, _ := registerUser(t, r, "Alice Smith", "alice")
	roomID := createRoom(t, r, token, "Garden flat")
	base := "/api/rooms/" + roomID + "/availability"

	w := performRequest(r, http.MethodPost, base, map[string]interface{}{"startDate": "2026-03-10", "endDate": "2026-03-01"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = performRequest(r, http.MethodPost, base, map[string]interface{}{"startDate": "March 1", "endDate": "2026-03-01"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(r, http.MethodPost, base, map[string]interface{}{"startDate": "2026-03-01", "endDate": "2026-06-30"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	windowID := decodeBody(t, w)["availability"].(map[string]interface{})["id"].(string)

	w = performRequest(r, http.MethodGet, "/api/rooms/"+roomID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	room := decodeBody(t, w)["room"].(map[string]interface{})
	assert.Len(t, room["availability"], 1)

	w = performRequest(r, http.MethodDelete, base+"/"+windowID, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(r, http.MethodDelete, base+"/"+windowID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
