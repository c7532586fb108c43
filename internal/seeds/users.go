package seeds

import (
	"errors"
	"fmt"

	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	systemUsername = "roommates"
	systemEmail    = "team@roommatefinder.local"
)

// GetOrCreateSystemUser returns the admin account that owns seeded data.
func GetOrCreateSystemUser(db *gorm.DB) (models.User, error) {
	var user models.User
	err := db.Where("username = ?", systemUsername).First(&user).Error
	if err == nil {
		logger.Info().Str("username", user.Username).Msg("System user found")
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("RoommateSeed2024!"), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user = models.User{
		Username: systemUsername,
		Email:    systemEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	logger.Info().Str("username", user.Username).Msg("System user created")
	return user, nil
}
