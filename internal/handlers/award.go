package handlers

import (
	"net/http"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/VitinDemarque/codearena-backend/internal/services"
	apperrors "github.com/VitinDemarque/codearena-backend/pkg/errors"
	"github.com/gin-gonic/gin"
)

// ListUserBadges handles GET /api/users/:id/badges
func ListUserBadges(c *gin.Context) {
	var userBadges []models.UserBadge
	if err := database.DB.Preload("Badge").
		Where("user_id = ?", c.Param("id")).
		Order("awarded_at DESC").
		Find(&userBadges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": userBadges})
}

// ListUserTitles handles GET /api/users/:id/titles
func ListUserTitles(c *gin.Context) {
	var userTitles []models.UserTitle
	if err := database.DB.Preload("Title").
		Where("user_id = ?", c.Param("id")).
		Order("awarded_at DESC").
		Find(&userTitles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch titles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"titles": userTitles})
}

// GrantBadge handles POST /api/awards/badges (admin only)
// Grants are idempotent; regranting an owned badge is a no-op apart from
// the source field.
func GrantBadge(c *gin.Context) {
	var input struct {
		UserID  string `json:"userId" binding:"required"`
		BadgeID string `json:"badgeId" binding:"required"`
		Source  string `json:"source"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.GrantBadge(input.UserID, input.BadgeID, input.Source); err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant badge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"granted": true})
}

// GrantTitle handles POST /api/awards/titles (admin only)
func GrantTitle(c *gin.Context) {
	var input struct {
		UserID  string `json:"userId" binding:"required"`
		TitleID string `json:"titleId" binding:"required"`
		Active  bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.GrantTitle(input.UserID, input.TitleID, input.Active); err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant title"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"granted": true})
}

// SetTitleActive handles PATCH /api/awards/titles/active
// Users can only toggle their own titles.
func SetTitleActive(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		TitleID string `json:"titleId" binding:"required"`
		Active  bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.SetTitleActive(userID.(string), input.TitleID, input.Active); err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update title"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}
