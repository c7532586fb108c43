package main

import (
	"context"
	"flag"

	"github.com/appnity/roommate-finder/internal/config"
	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/migrations"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/seeds"
	"github.com/appnity/roommate-finder/internal/services"
	"github.com/appnity/roommate-finder/pkg/logger"
)

func main() {
	clearFirst := flag.Bool("clear", false, "delete every listing (users are kept) before seeding")
	flag.Parse()

	config.LoadConfig()
	logger.Init(config.AppConfig.Env)
	database.Connect()
	database.InitRedis()

	if err := database.DB.AutoMigrate(models.All()...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate tables")
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	ctx := context.Background()
	if *clearFirst {
		if err := seeds.Clear(ctx, database.DB); err != nil {
			logger.Fatal().Err(err).Msg("Failed to clear tables")
		}
	}
	if err := seeds.Run(ctx, database.DB); err != nil {
		logger.Fatal().Err(err).Msg("Seeding failed")
	}
	services.InvalidateLookups(ctx)

	logger.Info().Bool("cleared", *clearFirst).Msg("Seeding complete")
}
