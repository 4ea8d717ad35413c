package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/config"
	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	apperrors "github.com/VitinDemarque/codearena-backend/pkg/errors"
	"github.com/VitinDemarque/codearena-backend/pkg/logger"
)

type Dimension string

const (
	DimensionGeneral  Dimension = "general"
	DimensionLanguage Dimension = "language"
	DimensionSeason   Dimension = "season"
	DimensionCollege  Dimension = "college"
	DimensionGroup    Dimension = "group"
)

const defaultLeaderboardMaxLimit = 100

// leaderboardMaxLimit is the page-size ceiling, overridable per deployment
func leaderboardMaxLimit() int {
	if config.AppConfig != nil && config.AppConfig.LeaderboardMaxLimit > 0 {
		return config.AppConfig.LeaderboardMaxLimit
	}
	return defaultLeaderboardMaxLimit
}

type RankEntry struct {
	Position        int     `json:"position"`
	UserID          string  `json:"userId"`
	Name            string  `json:"name"`
	Handle          string  `json:"handle"`
	Points          int     `json:"points"`
	ComplexityScore int     `json:"complexityScore"`
	TimeSpentMs     int64   `json:"timeSpentMs"`
	XPTotal         int64   `json:"xpTotal"`
	CollegeID       *string `json:"collegeId,omitempty"`
}

// In-memory cache: dimension:id -> {Entries, Expiry}
type cachedLeaderboard struct {
	Entries   []RankEntry
	ExpiresAt time.Time
}

var (
	leaderboardCache = make(map[string]cachedLeaderboard)
	lbMutex          sync.RWMutex
	lbTTL            = 10 * time.Second // Refresh every 10s max
)

// Redis keeps the cross-instance copy of each full ordering; the local map
// only short-circuits repeat reads on the same instance. Function vars so
// tests can stand in for a live server.
const leaderboardCachePrefix = "leaderboard:"

var errRedisDisabled = errors.New("redis disabled")

var (
	cacheGetFn = func(key string, dest interface{}) error {
		if database.Redis == nil {
			return errRedisDisabled
		}
		return database.CacheGet(key, dest)
	}
	cacheSetFn = func(key string, value interface{}, ttl time.Duration) error {
		if database.Redis == nil {
			return errRedisDisabled
		}
		return database.CacheSet(key, value, ttl)
	}
	cacheInvalidateFn = func(pattern string) error {
		if database.Redis == nil {
			return errRedisDisabled
		}
		return database.CacheInvalidate(pattern)
	}
)

// InvalidateLeaderboards clears all cached rankings, local and redis (call
// on accepted submission)
func InvalidateLeaderboards() {
	lbMutex.Lock()
	leaderboardCache = make(map[string]cachedLeaderboard)
	lbMutex.Unlock()

	if err := cacheInvalidateFn(leaderboardCachePrefix + "*"); err != nil && err != errRedisDisabled {
		logger.Warn().Err(err).Msg("Failed to drop leaderboard keys from redis")
	}
}

// GetLeaderboard computes the ranked view for a dimension, reduced to one
// best entry per user, then pages it with skip/limit. Positions reflect the
// global rank, not the window.
func GetLeaderboard(dimension Dimension, dimensionID string, skip, limit int) ([]RankEntry, error) {
	switch dimension {
	case DimensionGeneral:
		// No scope id needed
	case DimensionLanguage, DimensionSeason, DimensionCollege, DimensionGroup:
		if dimensionID == "" {
			return nil, apperrors.BadRequest("dimensionId is required for dimension " + string(dimension))
		}
	default:
		return nil, apperrors.BadRequest("Unknown leaderboard dimension")
	}

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if max := leaderboardMaxLimit(); limit > max {
		limit = max
	}

	cacheKey := string(dimension) + ":" + dimensionID

	// 1. Check the local cache
	lbMutex.RLock()
	if cached, ok := leaderboardCache[cacheKey]; ok {
		if time.Now().Before(cached.ExpiresAt) {
			lbMutex.RUnlock()
			return pageEntries(cached.Entries, skip, limit), nil
		}
	}
	lbMutex.RUnlock()

	// 2. Check redis: another instance may have the ordering already
	var remote []RankEntry
	if err := cacheGetFn(leaderboardCachePrefix+cacheKey, &remote); err == nil {
		lbMutex.Lock()
		leaderboardCache[cacheKey] = cachedLeaderboard{
			Entries:   remote,
			ExpiresAt: time.Now().Add(lbTTL),
		}
		lbMutex.Unlock()
		return pageEntries(remote, skip, limit), nil
	}

	// 3. Fetch the scoped accepted submissions
	query := database.DB.Model(&models.Submission{}).
		Preload("User").
		Where("submissions.status = ?", models.SubStatusAccepted).
		Where("submissions.final_score IS NOT NULL")

	switch dimension {
	case DimensionLanguage:
		query = query.
			Joins("JOIN exercises ON exercises.id = submissions.exercise_id").
			Where("exercises.language_id = ?", dimensionID)
	case DimensionSeason:
		query = query.Where("submissions.season_id = ?", dimensionID)
	case DimensionCollege:
		query = query.
			Joins("JOIN users ON users.id = submissions.user_id").
			Where("users.college_id = ?", dimensionID)
	case DimensionGroup:
		query = query.Where("submissions.user_id IN (?)",
			database.DB.Model(&models.GroupMember{}).Select("user_id").Where("group_id = ?", dimensionID))
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}

	// 4. Reduce to each user's best submission, judged by the same ordering
	// used for final ranking (not their most recent)
	best := make(map[string]*models.Submission)
	for i := range submissions {
		sub := &submissions[i]
		current, ok := best[sub.UserID]
		if !ok || outranks(sub, current) {
			best[sub.UserID] = sub
		}
	}

	entries := make([]RankEntry, 0, len(best))
	for _, sub := range best {
		entry := RankEntry{
			UserID:          sub.UserID,
			Points:          *sub.FinalScore,
			ComplexityScore: sub.ComplexityScore,
			TimeSpentMs:     sub.TimeSpentMs,
		}
		if sub.User != nil {
			entry.Name = sub.User.Name
			entry.Handle = sub.User.Handle
			entry.XPTotal = sub.User.XPTotal
			entry.CollegeID = sub.User.CollegeID
		}
		entries = append(entries, entry)
	}

	// 5. Sort: finalScore DESC, complexityScore DESC, timeSpentMs ASC.
	// User id as the last key keeps repeated queries byte-stable.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].ComplexityScore != entries[j].ComplexityScore {
			return entries[i].ComplexityScore > entries[j].ComplexityScore
		}
		if entries[i].TimeSpentMs != entries[j].TimeSpentMs {
			return entries[i].TimeSpentMs < entries[j].TimeSpentMs
		}
		return entries[i].UserID < entries[j].UserID
	})

	// Positions are assigned over the full ordering, before pagination
	for i := range entries {
		entries[i].Position = i + 1
	}

	// 6. Cache the full ordering locally and in redis; pagination happens
	// per request
	lbMutex.Lock()
	leaderboardCache[cacheKey] = cachedLeaderboard{
		Entries:   entries,
		ExpiresAt: time.Now().Add(lbTTL),
	}
	lbMutex.Unlock()

	if err := cacheSetFn(leaderboardCachePrefix+cacheKey, entries, lbTTL); err != nil && err != errRedisDisabled {
		logger.Warn().Err(err).Msg("Failed to cache leaderboard in redis")
	}

	return pageEntries(entries, skip, limit), nil
}

// outranks applies the ranking order to two submissions of the same user
func outranks(a, b *models.Submission) bool {
	if *a.FinalScore != *b.FinalScore {
		return *a.FinalScore > *b.FinalScore
	}
	if a.ComplexityScore != b.ComplexityScore {
		return a.ComplexityScore > b.ComplexityScore
	}
	if a.TimeSpentMs != b.TimeSpentMs {
		return a.TimeSpentMs < b.TimeSpentMs
	}
	// Equal on all keys: keep the earlier record for stability
	return a.CreatedAt.Before(b.CreatedAt)
}

func pageEntries(entries []RankEntry, skip, limit int) []RankEntry {
	if skip >= len(entries) {
		return []RankEntry{}
	}
	end := skip + limit
	if end > len(entries) {
		end = len(entries)
	}
	page := make([]RankEntry, end-skip)
	copy(page, entries[skip:end])
	return page
}
