package handlers

import (
	"net/http"
	"strconv"

	"github.com/VitinDemarque/codearena-backend/internal/services"
	apperrors "github.com/VitinDemarque/codearena-backend/pkg/errors"
	"github.com/gin-gonic/gin"
)

// CreateSubmission handles POST /api/submissions
// Validates against the exercise rules, scores, persists, and credits XP.
// Stats/badge side effects are best-effort and never fail the response.
func CreateSubmission(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input services.CreateSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, newBadges, err := services.CreateSubmission(userID.(string), input)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"submission": submission,
		"newBadges":  newBadges, // Send badges to frontend for celebration
	})
}

// ListExerciseSubmissions handles GET /api/submissions/exercise/:exerciseId
func ListExerciseSubmissions(c *gin.Context) {
	page, limit := paginationParams(c)

	items, total, err := services.ListSubmissionsByExercise(c.Param("exerciseId"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// ListUserSubmissions handles GET /api/submissions/user/:userId
func ListUserSubmissions(c *gin.Context) {
	page, limit := paginationParams(c)

	items, total, err := services.ListSubmissionsByUser(c.Param("userId"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func paginationParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}
