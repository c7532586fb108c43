package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appnity/roommate-finder/internal/config"
	"github.com/appnity/roommate-finder/internal/database"
	"github.com/appnity/roommate-finder/internal/handlers"
	"github.com/appnity/roommate-finder/internal/migrations"
	"github.com/appnity/roommate-finder/internal/models"
	"github.com/appnity/roommate-finder/internal/regions"
	"github.com/appnity/roommate-finder/internal/routes"
	"github.com/appnity/roommate-finder/internal/storage"
	"github.com/appnity/roommate-finder/internal/validation"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Env)
	logger.Info().Str("environment", cfg.Env).Msg("Starting Roommate Finder backend")

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations")
	if err := database.DB.AutoMigrate(models.All()...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate tables")
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run versioned migrations")
	}

	reg, err := regions.Load(cfg.RegionsFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn().Str("file", cfg.RegionsFile).Msg("Regions file missing, metro filters disabled")
	case err != nil:
		logger.Fatal().Err(err).Str("file", cfg.RegionsFile).Msg("Invalid regions file")
	default:
		logger.Info().Int("regions", len(reg.Regions)).Str("default", reg.DefaultSlug).Msg("Regions loaded")
	}
	handlers.Regions = reg

	if err := validation.Register(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to register validators")
	}

	store, err := storage.NewR2Store(context.Background(), cfg)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Warn().Msg("Object storage not configured, image uploads disabled")
	case err != nil:
		logger.Fatal().Err(err).Msg("Failed to init object storage")
	default:
		handlers.Store = store
	}

	r := routes.NewRouter()

	socketServer := handlers.InitSocketServer()
	defer socketServer.Close()
	r.GET("/socket.io/*any", handlers.SocketHandler(socketServer))
	r.POST("/socket.io/*any", handlers.SocketHandler(socketServer))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
}
