package routes

import (
	"github.com/VitinDemarque/codearena-backend/internal/handlers"
	"github.com/VitinDemarque/codearena-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterSubmissionRoutes sets up the submission endpoints
func RegisterSubmissionRoutes(r gin.IRouter) {
	submissions := r.Group("/submissions")
	{
		// Public listings
		submissions.GET("/exercise/:exerciseId", handlers.ListExerciseSubmissions)
		submissions.GET("/user/:userId", handlers.ListUserSubmissions)

		// Protected: create a submission
		protected := submissions.Group("")
		protected.Use(middleware.AuthMiddleware(), middleware.SubmitRateLimit())
		{
			protected.POST("", handlers.CreateSubmission)
		}
	}
}
