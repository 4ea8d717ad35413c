package seeds

import (
	"log"
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/google/uuid"
)

func SeedLanguages() {
	log.Println("🌐 Seeding Languages...")

	languages := []models.Language{
		{Name: "Python", Slug: "python"},
		{Name: "JavaScript", Slug: "javascript"},
		{Name: "Go", Slug: "go"},
		{Name: "Java", Slug: "java"},
		{Name: "C++", Slug: "cpp"},
	}

	for _, l := range languages {
		var existing models.Language
		if err := database.DB.Where("slug = ?", l.Slug).First(&existing).Error; err == nil {
			continue
		}

		l.ID = uuid.New().String()
		if err := database.DB.Create(&l).Error; err != nil {
			log.Printf("   ❌ Failed to create language %s: %v", l.Name, err)
		}
	}
}

func SeedExercises() {
	log.Println("🧩 Seeding Sample Exercises...")

	var count int64
	database.DB.Model(&models.Exercise{}).Count(&count)
	if count > 0 {
		log.Println("   ℹ️ Exercises already present, skipping")
		return
	}

	var python models.Language
	if err := database.DB.Where("slug = ?", "python").First(&python).Error; err != nil {
		log.Println("   ❌ Python language missing, run SeedLanguages first")
		return
	}

	exercises := []models.Exercise{
		{
			Title:       "Two Sum",
			Description: "Given an array of integers and a target, return indices of the two numbers that add up to the target.",
			Status:      models.ExerciseStatusPublished,
			BaseXP:      50,
			Difficulty:  1,
			LanguageID:  python.ID,
		},
		{
			Title:       "Balanced Brackets",
			Description: "Determine whether the bracket sequence is balanced.",
			Status:      models.ExerciseStatusPublished,
			BaseXP:      80,
			Difficulty:  2,
			LanguageID:  python.ID,
		},
		{
			Title:       "Shortest Path in a Grid",
			Description: "Find the shortest path through a weighted grid.",
			Status:      models.ExerciseStatusPublished,
			BaseXP:      200,
			Difficulty:  4,
			LanguageID:  python.ID,
		},
	}

	for _, e := range exercises {
		e.ID = uuid.New().String()
		e.CreatedAt = time.Now()
		if err := database.DB.Create(&e).Error; err != nil {
			log.Printf("   ❌ Failed to create exercise %s: %v", e.Title, err)
		} else {
			log.Printf("   🧩 Exercise Created: %s", e.Title)
		}
	}
}
