package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/remi/mealtrack/internal/api"
	"github.com/remi/mealtrack/internal/api/middleware"
	"github.com/remi/mealtrack/internal/config"
	"github.com/remi/mealtrack/internal/logger"
	"github.com/remi/mealtrack/internal/lookup"
	"github.com/remi/mealtrack/internal/repository"
	"github.com/remi/mealtrack/internal/service"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.SetDefaultLogger(logger.NewDefault())
	defer logger.Sync()
	baseLog := logger.GetDefault()

	// Initialize database and ensure the schema. A failure here is fatal:
	// the store must not serve requests it cannot persist.
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		baseLog.WithError(err).Fatalf("Failed to initialize store")
	}

	// Initialize repository and services
	mealRepo := repository.NewMealRepository(db)
	mealService := service.NewMealService(mealRepo)

	gateway := lookup.NewClient(&cfg.Edamam)
	foodSearch := service.NewFoodSearchService(gateway)

	// Setup router
	router := api.SetupRouter(mealService, foodSearch, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}, cfg.Server.Mode)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		baseLog.Infof("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			baseLog.WithError(err).Fatalf("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	baseLog.Infof("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		baseLog.WithError(err).Errorf("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	baseLog.Infof("Server exited")
}
