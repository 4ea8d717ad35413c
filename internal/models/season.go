package models

import "time"

// Season is a bounded time window scoping the season leaderboard dimension.
// The model does not enforce exclusivity; the engine picks the first active
// season whose window contains "now".
type Season struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Season) TableName() string {
	return "seasons"
}

// LevelRule maps a cumulative XP floor to a level. MinXP is strictly
// increasing with Level; level 1 has MinXP 0.
type LevelRule struct {
	Level int   `gorm:"primaryKey" json:"level"`
	MinXP int64 `gorm:"column:min_xp;uniqueIndex" json:"minXp"`
}

func (LevelRule) TableName() string {
	return "level_rules"
}
