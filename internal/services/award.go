package services

import (
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	apperrors "github.com/VitinDemarque/codearena-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Badge and title grants are recorded here once a caller has decided
// eligibility; this service never inspects stats itself. Grants are
// idempotent upserts keyed by the composite primary key, so concurrent
// grant attempts for the same pair collapse into one row.

// GrantBadge awards a badge to a user. The first grant sets AwardedAt;
// replays only refresh the mutable Source field.
func GrantBadge(userID, badgeID, source string) error {
	var badge models.Badge
	if err := database.DB.First(&badge, "id = ?", badgeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("Badge not found")
		}
		return err
	}

	userBadge := models.UserBadge{
		UserID:    userID,
		BadgeID:   badgeID,
		Source:    source,
		AwardedAt: time.Now(),
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"source": source,
		}),
	}).Create(&userBadge).Error
}

// GrantTitle awards a title. Like badges, AwardedAt survives replays; the
// Active flag is mutable.
func GrantTitle(userID, titleID string, active bool) error {
	var title models.Title
	if err := database.DB.First(&title, "id = ?", titleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("Title not found")
		}
		return err
	}

	userTitle := models.UserTitle{
		UserID:    userID,
		TitleID:   titleID,
		Active:    active,
		AwardedAt: time.Now(),
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "title_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"active": active,
		}),
	}).Create(&userTitle).Error
}

// SetTitleActive toggles the worn flag on an already-granted title.
func SetTitleActive(userID, titleID string, active bool) error {
	res := database.DB.Model(&models.UserTitle{}).
		Where("user_id = ? AND title_id = ?", userID, titleID).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Title not granted to this user")
	}
	return nil
}

// EvaluateBadges checks which badge thresholds the user has crossed and
// grants anything new. Called best-effort after accepted submissions and
// exercise creation; errors are the caller's to log and swallow.
func EvaluateBadges(userID string) ([]models.Badge, error) {
	var granted []models.Badge

	var stat models.UserStat
	if err := database.DB.First(&stat, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// No stats yet, nothing can have unlocked
			return nil, nil
		}
		return nil, err
	}

	var existingBadgeIDs []string
	if err := database.DB.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &existingBadgeIDs).Error; err != nil {
		return nil, err
	}

	existingSet := make(map[string]bool)
	for _, id := range existingBadgeIDs {
		existingSet[id] = true
	}

	// Condition name -> current progress
	progress := map[string]int{
		"exercises_solved":  stat.ExercisesSolvedCount,
		"exercises_created": stat.ExercisesCreatedCount,
	}

	var systemBadges []models.Badge
	if err := database.DB.Find(&systemBadges).Error; err != nil {
		return nil, err
	}

	for _, badge := range systemBadges {
		if existingSet[badge.ID] {
			continue
		}

		current, ok := progress[badge.Condition]
		if !ok {
			continue
		}

		if current >= badge.Threshold {
			if err := GrantBadge(userID, badge.ID, "threshold"); err == nil {
				granted = append(granted, badge)
			}
		}
	}

	return granted, nil
}
