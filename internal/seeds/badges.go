package seeds

import (
	"log"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/google/uuid"
)

func SeedBadges() {
	log.Println("🎖️ Seeding System Badges...")

	badges := []models.Badge{
		{
			Name:        "First Blood",
			Description: "Solved your first exercise.",
			Icon:        "check-circle",
			Category:    models.BadgeCategorySkill,
			Condition:   "exercises_solved",
			Threshold:   1,
		},
		{
			Name:        "Apprentice Solver",
			Description: "Solved 5 exercises.",
			Icon:        "zap",
			Category:    models.BadgeCategorySkill,
			Condition:   "exercises_solved",
			Threshold:   5,
		},
		{
			Name:        "Algorithm Architect",
			Description: "Solved 25 exercises. A true problem crusher.",
			Icon:        "shield-check",
			Category:    models.BadgeCategorySkill,
			Condition:   "exercises_solved",
			Threshold:   25,
		},
		{
			Name:        "Centurion",
			Description: "Solved 100 exercises.",
			Icon:        "crown",
			Category:    models.BadgeCategorySkill,
			Condition:   "exercises_solved",
			Threshold:   100,
		},
		{
			Name:        "Exercise Author",
			Description: "Created your first exercise.",
			Icon:        "pen-tool",
			Category:    models.BadgeCategorySystem,
			Condition:   "exercises_created",
			Threshold:   1,
		},
		{
			Name:        "Curriculum Builder",
			Description: "Created 10 exercises for the community.",
			Icon:        "library",
			Category:    models.BadgeCategorySystem,
			Condition:   "exercises_created",
			Threshold:   10,
		},
	}

	for _, b := range badges {
		var existing models.Badge
		if err := database.DB.Where("name = ?", b.Name).First(&existing).Error; err == nil {
			log.Printf("   ℹ️ Badge already exists: %s", b.Name)
			continue
		}

		b.ID = uuid.New().String()
		if err := database.DB.Create(&b).Error; err != nil {
			log.Printf("   ❌ Failed to create badge %s: %v", b.Name, err)
		} else {
			log.Printf("   🎖️ Badge Defined: %s", b.Name)
		}
	}
}

func SeedTitles() {
	log.Println("🏅 Seeding Titles...")

	titles := []models.Title{
		{Name: "Novice", Description: "Just getting started."},
		{Name: "Code Wrangler", Description: "Reached level 5."},
		{Name: "Grandmaster", Description: "Reached level 10."},
		{Name: "Season Champion", Description: "Topped a season leaderboard."},
	}

	for _, t := range titles {
		var existing models.Title
		if err := database.DB.Where("name = ?", t.Name).First(&existing).Error; err == nil {
			continue
		}

		t.ID = uuid.New().String()
		if err := database.DB.Create(&t).Error; err != nil {
			log.Printf("   ❌ Failed to create title %s: %v", t.Name, err)
		} else {
			log.Printf("   🏅 Title Defined: %s", t.Name)
		}
	}
}
