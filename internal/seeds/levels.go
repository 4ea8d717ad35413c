package seeds

import (
	"log"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"gorm.io/gorm/clause"
)

// SeedLevelRules installs the XP floors for levels 1..10.
// Floors are strictly increasing; level 1 starts at 0.
func SeedLevelRules() {
	log.Println("📈 Seeding Level Rules...")

	rules := []models.LevelRule{
		{Level: 1, MinXP: 0},
		{Level: 2, MinXP: 100},
		{Level: 3, MinXP: 300},
		{Level: 4, MinXP: 700},
		{Level: 5, MinXP: 1500},
		{Level: 6, MinXP: 3000},
		{Level: 7, MinXP: 6000},
		{Level: 8, MinXP: 12000},
		{Level: 9, MinXP: 25000},
		{Level: 10, MinXP: 50000},
	}

	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rules).Error; err != nil {
		log.Printf("   ❌ Failed to seed level rules: %v", err)
	} else {
		log.Printf("   📈 %d level rules in place", len(rules))
	}
}
