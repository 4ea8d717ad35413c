package services

import (
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	apperrors "github.com/VitinDemarque/codearena-backend/pkg/errors"
	"github.com/VitinDemarque/codearena-backend/pkg/logger"
	"github.com/VitinDemarque/codearena-backend/pkg/utils"
	"gorm.io/gorm"
)

type CreateSubmissionInput struct {
	ExerciseID  string `json:"exerciseId" binding:"required"`
	Code        string `json:"code"`
	Score       int    `json:"score"`
	TimeSpentMs int64  `json:"timeSpentMs"`
}

// Hooks for the best-effort side effects, swappable in tests to simulate
// aggregator failures without touching the database layer.
var (
	recordSolvedFn   = RecordSolved
	evaluateBadgesFn = EvaluateBadges
)

// CreateSubmission validates a submission against the exercise rules, scores
// it, persists it, and credits XP and stats.
//
// Side effects are strictly ordered: persist submission -> credit XP/level ->
// update stats/badges. Everything after persistence is best-effort; a stats
// failure leaves the accepted submission intact and is only logged.
func CreateSubmission(userID string, input CreateSubmissionInput) (*models.Submission, []models.Badge, error) {
	var exercise models.Exercise
	if err := database.DB.First(&exercise, "id = ?", input.ExerciseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.NotFound("Exercise not found")
		}
		return nil, nil, err
	}

	if exercise.Status != models.ExerciseStatusPublished {
		return nil, nil, apperrors.BadRequest("Exercise is not accepting submissions")
	}

	// No active season is fine; the submission just carries a nil seasonId
	seasonID := currentSeasonID(time.Now())

	score := input.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	metrics := AnalyzeComplexity(input.Code)
	complexityScore := ComplexityScore(metrics)

	submission := models.Submission{
		ID:                   utils.GenerateID(),
		UserID:               userID,
		ExerciseID:           input.ExerciseID,
		SeasonID:             seasonID,
		Code:                 input.Code,
		Score:                score,
		TestScore:            score,
		ComplexityScore:      complexityScore,
		CyclomaticComplexity: metrics.Cyclomatic,
		LinesOfCode:          metrics.LinesOfCode,
		MaxNestingDepth:      metrics.MaxNestingDepth,
		HasRecursion:         metrics.HasRecursion,
		TimeSpentMs:          input.TimeSpentMs,
		CreatedAt:            time.Now(),
	}

	if score >= AcceptScoreThreshold() {
		submission.Status = models.SubStatusAccepted
		submission.BonusPoints = BonusPoints(complexityScore)
		finalScore := submission.TestScore + submission.BonusPoints
		submission.FinalScore = &finalScore

		xp := CalculateXP(exercise.BaseXP, exercise.Difficulty, score, input.TimeSpentMs, seasonID != nil)
		submission.XPAwarded = &xp
	} else {
		submission.Status = models.SubStatusRejected
	}

	if err := database.DB.Create(&submission).Error; err != nil {
		return nil, nil, err
	}

	var newBadges []models.Badge
	if submission.Status == models.SubStatusAccepted {
		if err := creditXP(userID, *submission.XPAwarded); err != nil {
			// XP credit failed but the submission is already committed;
			// report the submission and surface the gap in logs only.
			logger.Error().Err(err).Str("user_id", userID).Str("submission_id", submission.ID).Msg("Failed to credit XP")
		}

		if err := recordSolvedFn(userID, input.ExerciseID, submission.ID, score); err != nil {
			logger.Error().Err(err).Str("submission_id", submission.ID).Msg("Stats update failed, submission kept")
		} else {
			awarded, err := evaluateBadgesFn(userID)
			if err != nil {
				logger.Error().Err(err).Str("user_id", userID).Msg("Badge evaluation failed")
			} else {
				newBadges = awarded
			}
		}

		InvalidateLeaderboards()
	}

	return &submission, newBadges, nil
}

// currentSeasonID returns the id of the active season whose window contains
// the given instant, or nil when there is none.
func currentSeasonID(now time.Time) *string {
	var season models.Season
	err := database.DB.
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("start_date asc").
		First(&season).Error
	if err != nil {
		return nil
	}
	return &season.ID
}

// creditXP adds the award to the user's total as a SQL-side increment (two
// concurrent accepts must not lose an update), then re-derives the level
// from the new total so level always agrees with xpTotal.
func creditXP(userID string, xp int) error {
	if xp <= 0 {
		return nil
	}

	if err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("xp_total", gorm.Expr("xp_total + ?", xp)).Error; err != nil {
		return err
	}

	var user models.User
	if err := database.DB.Select("id", "xp_total", "level").First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	var rules []models.LevelRule
	if err := database.DB.Order("min_xp asc").Find(&rules).Error; err != nil {
		return err
	}

	level := ResolveLevel(user.XPTotal, rules)
	if level != user.Level {
		if err := database.DB.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("level", level).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListSubmissionsByExercise returns a page of submissions for one exercise,
// newest first.
func ListSubmissionsByExercise(exerciseID string, page, limit int) ([]models.Submission, int64, error) {
	return listSubmissions("exercise_id = ?", exerciseID, page, limit)
}

// ListSubmissionsByUser returns a page of one user's submissions, newest
// first.
func ListSubmissionsByUser(userID string, page, limit int) ([]models.Submission, int64, error) {
	return listSubmissions("user_id = ?", userID, page, limit)
}

func listSubmissions(where string, arg string, page, limit int) ([]models.Submission, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := database.DB.Model(&models.Submission{}).Where(where, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []models.Submission
	err := database.DB.Where(where, arg).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}
