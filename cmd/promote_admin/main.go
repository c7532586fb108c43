package main

import (
	"context"
	"flag"

	"github.com/appnity/roommate-finder/internal/config"
	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/services"
	"github.com/appnity/roommate-finder/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()

	config.LoadConfig()
	logger.Init(config.AppConfig.Env)
	if *email == "" {
		logger.Fatal().Msg("-email is required")
	}
	database.Connect()

	var user models.User
	if err := database.DB.Where("email = ?", *email).First(&user).Error; err != nil {
		logger.Fatal().Err(err).Str("email", *email).Msg("User not found")
	}
	if user.IsAdmin() {
		logger.Info().Str("email", user.Email).Msg("User is already an admin")
		return
	}

	if err := database.DB.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
		logger.Fatal().Err(err).Msg("Failed to update user role")
	}
	// No acting admin from the command line; the user records their own promotion.
	services.RecordAdminAction(context.Background(), database.DB, user.ID, models.ActionPromoteUserAdmin, "user", user.ID,
		map[string]interface{}{"email": user.Email, "via": "promote_admin"})

	logger.Info().Str("username", user.Username).Str("email", user.Email).Msg("Promoted to ADMIN")
}
