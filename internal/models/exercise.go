package models

import (
	"time"

	"gorm.io/gorm"
)

type ExerciseStatus string

const (
	ExerciseStatusDraft     ExerciseStatus = "DRAFT"
	ExerciseStatusPublished ExerciseStatus = "PUBLISHED"
	ExerciseStatusArchived  ExerciseStatus = "ARCHIVED"
)

type Language struct {
	ID   string `gorm:"primaryKey;type:text" json:"id"`
	Name string `json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
}

func (Language) TableName() string {
	return "languages"
}

type Exercise struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Only PUBLISHED exercises accept submissions
	Status ExerciseStatus `gorm:"type:text;default:'DRAFT'" json:"status"`

	BaseXP     int `gorm:"column:base_xp;default:0" json:"baseXp"`
	Difficulty int `gorm:"default:1" json:"difficulty"` // 1..5

	StarterCode string `gorm:"type:text" json:"starterCode"`

	LanguageID string    `json:"languageId"`
	Language   *Language `gorm:"foreignKey:LanguageID" json:"language,omitempty"`

	AuthorID string `json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Exercise) TableName() string {
	return "exercises"
}
