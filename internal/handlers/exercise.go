package handlers

import (
	"net/http"
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/VitinDemarque/codearena-backend/internal/services"
	"github.com/VitinDemarque/codearena-backend/pkg/logger"
	"github.com/VitinDemarque/codearena-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListExercises handles GET /api/exercises
// Only PUBLISHED exercises are listed; draft and archived stay hidden.
func ListExercises(c *gin.Context) {
	var exercises []models.Exercise

	query := database.DB.Model(&models.Exercise{}).
		Where("status = ?", models.ExerciseStatusPublished).
		Preload("Language")

	if lang := c.Query("languageId"); lang != "" {
		query = query.Where("language_id = ?", lang)
	}
	if diff := c.Query("difficulty"); diff != "" {
		query = query.Where("difficulty = ?", diff)
	}

	if err := query.Order("created_at DESC").Find(&exercises).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch exercises"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

// GetExercise handles GET /api/exercises/:id
func GetExercise(c *gin.Context) {
	var exercise models.Exercise
	if err := database.DB.Preload("Language").First(&exercise, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	var stat models.ExerciseStat
	database.DB.First(&stat, "exercise_id = ?", exercise.ID)

	c.JSON(http.StatusOK, gin.H{"exercise": exercise, "stats": stat})
}

// CreateExercise handles POST /api/exercises
// New exercises start as DRAFT and count toward the author's created stat.
func CreateExercise(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		BaseXP      int    `json:"baseXp"`
		Difficulty  int    `json:"difficulty"`
		LanguageID  string `json:"languageId" binding:"required"`
		StarterCode string `json:"starterCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.BaseXP < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "baseXp must be non-negative"})
		return
	}
	if input.Difficulty < 1 || input.Difficulty > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty must be between 1 and 5"})
		return
	}

	exercise := models.Exercise{
		ID:          utils.GenerateID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      models.ExerciseStatusDraft,
		BaseXP:      input.BaseXP,
		Difficulty:  input.Difficulty,
		LanguageID:  input.LanguageID,
		StarterCode: input.StarterCode,
		AuthorID:    userID.(string),
		CreatedAt:   time.Now(),
	}

	if err := database.DB.Create(&exercise).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exercise"})
		return
	}

	// Best-effort: the exercise exists regardless of whether the counter
	// or the badge check lands
	if err := services.RecordCreated(exercise.AuthorID); err != nil {
		logger.Error().Err(err).Str("user_id", exercise.AuthorID).Msg("Failed to record created-exercise stat")
	} else if _, err := services.EvaluateBadges(exercise.AuthorID); err != nil {
		logger.Error().Err(err).Str("user_id", exercise.AuthorID).Msg("Failed to evaluate badges after exercise creation")
	}

	c.JSON(http.StatusCreated, gin.H{"exercise": exercise})
}

// PublishExercise handles PATCH /api/exercises/:id/publish (admin only)
func PublishExercise(c *gin.Context) {
	var exercise models.Exercise
	if err := database.DB.First(&exercise, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if exercise.Status == models.ExerciseStatusArchived {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archived exercises cannot be published"})
		return
	}

	if err := database.DB.Model(&exercise).Update("status", models.ExerciseStatusPublished).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish exercise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercise": exercise})
}
