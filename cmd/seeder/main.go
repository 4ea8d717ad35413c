package main

import (
	"log"

	"github.com/VitinDemarque/codearena-backend/internal/config"
	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/VitinDemarque/codearena-backend/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("🔄 Running migrations (just in case)...")
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

	seeds.SeedLevelRules()
	seeds.SeedBadges()
	seeds.SeedTitles()
	seeds.SeedLanguages()
	seeds.SeedExercises()

	log.Println("✅ Seeding complete")
}
