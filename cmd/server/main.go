package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/config"
	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/middleware"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/VitinDemarque/codearena-backend/internal/routes"
	"github.com/VitinDemarque/codearena-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	// Environment-based logger initialization (production = JSON, development = pretty)
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting CodeArena Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect Database
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("🔄 Running Database Migrations...")

	tableModels := []interface{}{
		&models.User{},
		&models.College{},
		&models.Group{},
		&models.GroupMember{},
		&models.Language{},
		&models.Exercise{},
		&models.Season{},
		&models.LevelRule{},
		&models.Submission{},
		&models.UserStat{},
		&models.ExerciseStat{},
		&models.SolveEvent{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Title{},
		&models.UserTitle{},
	}

	for _, m := range tableModels {
		if err := database.DB.AutoMigrate(m); err != nil {
			logger.Fatal().Err(err).Msgf("Failed to migrate table for %T", m)
		}
	}
	logger.Info().Msg("✅ Database Migrations Complete")

	// 3. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// 4. Register Routes
	api := r.Group("/api")
	{
		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware())

		routes.RegisterExerciseRoutes(public)
		routes.RegisterSubmissionRoutes(public)
		routes.RegisterLeaderboardRoutes(public)
		routes.RegisterAwardRoutes(public)
	}

	// Health check with DB and Redis status
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status":  status,
			"message": "CodeArena Backend is running 🚀",
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	// 5. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("🛑 Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("✅ Server exited gracefully")
}
