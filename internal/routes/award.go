package routes

import (
	"github.com/VitinDemarque/codearena-backend/internal/handlers"
	"github.com/VitinDemarque/codearena-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAwardRoutes sets up badge/title endpoints
func RegisterAwardRoutes(r gin.IRouter) {
	r.GET("/users/:id/badges", handlers.ListUserBadges)
	r.GET("/users/:id/titles", handlers.ListUserTitles)

	awards := r.Group("/awards")
	awards.Use(middleware.AuthMiddleware())
	{
		awards.PATCH("/titles/active", handlers.SetTitleActive)

		// Grant decisions come from services that judge eligibility
		// (or admins); this API only records them
		admin := awards.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/badges", handlers.GrantBadge)
			admin.POST("/titles", handlers.GrantTitle)
		}
	}
}
