package routes

import (
	"github.com/VitinDemarque/codearena-backend/internal/handlers"
	"github.com/VitinDemarque/codearena-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterExerciseRoutes sets up the exercise endpoints
func RegisterExerciseRoutes(r gin.IRouter) {
	exercises := r.Group("/exercises")
	{
		exercises.GET("", handlers.ListExercises)
		exercises.GET("/:id", handlers.GetExercise)

		protected := exercises.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("", handlers.CreateExercise)
			protected.PATCH("/:id/publish", middleware.AdminMiddleware(), handlers.PublishExercise)
		}
	}
}
