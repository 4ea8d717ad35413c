package handlers

import (
	"net/http"

	"github.com/VitinDemarque/codearena-backend/internal/services"
	apperrors "github.com/VitinDemarque/codearena-backend/pkg/errors"
	"github.com/gin-gonic/gin"
)

// GetLeaderboard handles GET /api/leaderboards/:dimension
// dimension is one of general, language, season, college, group.
// Non-general dimensions require ?dimensionId=.
func GetLeaderboard(c *gin.Context) {
	dimension := services.Dimension(c.Param("dimension"))
	dimensionID := c.Query("dimensionId")

	page, limit := paginationParams(c)
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit

	entries, err := services.GetLeaderboard(dimension, dimensionID, skip, limit)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
