package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/appnity/roommate-finder/internal/config"
	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/middleware"
	"github.com/appnity/roommate-finder/internal/migrations"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/appnity/roommate-finder/internal/routes"
	"github.com/appnity/roommate-finder/internal/validation"
	"github.com/appnity/roommate-finder/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package globals at a fresh in-memory database and
// returns a router built the way the server builds it.
func setupTestDB(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{
		Env:       "test",
		JWTSecret: "test_secret_key_12345",
	}

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, migrations.NewMigrator(db).Run())
	require.NoError(t, validation.Register())

	database.DB = db
	database.Redis = nil
	handlers.Store = nil
	handlers.Regions = regions.New("charleston", regions.Region{
		Slug:   "charleston",
		Name:   "Charleston Metro",
		State:  "SC",
		Cities: []string{"Charleston", "Mount Pleasant", "North Charleston"},
		Areas:  []string{"Downtown", "West Ashley"},
	})

	// Requests all come from one address; keep the limiters out of the way.
	unlimited := func() *middleware.IPRateLimiter { return middleware.NewIPRateLimiter(rate.Inf, 1) }
	middleware.GeneralLimiter = unlimited()
	middleware.AuthLimiter = unlimited()
	middleware.ContactLimiter = unlimited()
	middleware.MessageLimiter = unlimited()
	middleware.UploadLimiter = unlimited()

	return db, routes.NewRouter()
}

// createTestUser inserts an account directly (skipping registration) and
// returns its id and a token.
func createTestUser(t *testing.T, prefix string, role models.Role) (string, string) {
	t.Helper()
	passHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username: prefix + "_user",
		Email:    prefix + "@test.com",
		Password: string(passHash),
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID)
	require.NoError(t, err)
	return user.ID, token
}

func performRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		bodyReader = strings.NewReader(string(jsonBytes))
	} else {
		bodyReader = strings.NewReader("")
	}

	req, _ := http.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// registerUser goes through POST /api/auth/register and returns the token,
// user id and the id of the profile created with it.
func registerUser(t *testing.T, r *gin.Engine, name, username string) (token, userID, profileID string) {
	t.Helper()
	w := performRequest(r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     name,
		"email":    username + "@example.com",
		"username": username,
		"password": "Passw0rd!",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	profile := user["profile"].(map[string]interface{})
	return body["token"].(string), user["id"].(string), profile["id"].(string)
}
