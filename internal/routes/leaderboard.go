package routes

import (
	"github.com/VitinDemarque/codearena-backend/internal/handlers"
	"github.com/gin-gonic/gin"
)

// RegisterLeaderboardRoutes sets up the leaderboard endpoints
func RegisterLeaderboardRoutes(r gin.IRouter) {
	r.GET("/leaderboards/:dimension", handlers.GetLeaderboard)
}
