package services

import (
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stats aggregation is best-effort from the recorder's point of view: errors
// returned here are logged by callers, never propagated to the client.
//
// All counter updates are expressed as SQL-side increments inside a single
// upsert, so two concurrent solves by the same user cannot lose an update.

// RecordCreated bumps the author's created-exercise counter.
func RecordCreated(userID string) error {
	now := time.Now()
	stat := models.UserStat{
		UserID:                userID,
		ExercisesCreatedCount: 1,
		LastUpdatedAt:         now,
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"exercises_created_count": gorm.Expr("exercises_created_count + 1"),
			"last_updated_at":         now,
		}),
	}).Create(&stat).Error
}

// RecordSolved bumps the solver's and the exercise's counters for an accepted
// submission. It is idempotent per submission: a SolveEvent row keyed by the
// submission id is inserted first, and a replay that hits the existing row
// increments nothing.
func RecordSolved(userID, exerciseID, submissionID string, score int) error {
	now := time.Now()

	event := models.SolveEvent{
		SubmissionID: submissionID,
		UserID:       userID,
		ExerciseID:   exerciseID,
		Score:        score,
		CreatedAt:    now,
	}
	res := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&event)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Already recorded for this submission
		return nil
	}

	userStat := models.UserStat{
		UserID:               userID,
		ExercisesSolvedCount: 1,
		LastUpdatedAt:        now,
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"exercises_solved_count": gorm.Expr("exercises_solved_count + 1"),
			"last_updated_at":        now,
		}),
	}).Create(&userStat).Error; err != nil {
		return err
	}

	// Running mean keeps avg_score exact without storing score history.
	// Column references on the right-hand side see the pre-update row, so
	// the divisor is the incremented count.
	exerciseStat := models.ExerciseStat{
		ExerciseID:  exerciseID,
		SolvesCount: 1,
		AvgScore:    float64(score),
		LastSolveAt: now,
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "exercise_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"solves_count":  gorm.Expr("solves_count + 1"),
			"avg_score":     gorm.Expr("avg_score + ((? - avg_score) / (solves_count + 1))", float64(score)),
			"last_solve_at": now,
		}),
	}).Create(&exerciseStat).Error
}
