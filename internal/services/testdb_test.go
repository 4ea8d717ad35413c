package services

import (
	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/VitinDemarque/codearena-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes a fresh in-memory SQLite DB for testing
func SetupTestDB() {
	logger.Init("test")
	db, _ := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
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
	)
	InvalidateLeaderboards()
}
