package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/config"
	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	apperrors "github.com/VitinDemarque/codearena-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// stubRedisCache swaps the redis-backed cache funcs for a map so tests can
// observe what the service reads and writes cross-instance.
func stubRedisCache(t *testing.T) map[string][]byte {
	store := make(map[string][]byte)
	origGet, origSet, origInvalidate := cacheGetFn, cacheSetFn, cacheInvalidateFn

	cacheGetFn = func(key string, dest interface{}) error {
		raw, ok := store[key]
		if !ok {
			return errors.New("cache miss")
		}
		return json.Unmarshal(raw, dest)
	}
	cacheSetFn = func(key string, value interface{}, ttl time.Duration) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		store[key] = raw
		return nil
	}
	cacheInvalidateFn = func(pattern string) error {
		prefix := strings.TrimSuffix(pattern, "*")
		for k := range store {
			if strings.HasPrefix(k, prefix) {
				delete(store, k)
			}
		}
		return nil
	}

	t.Cleanup(func() {
		cacheGetFn, cacheSetFn, cacheInvalidateFn = origGet, origSet, origInvalidate
	})
	return store
}

type acceptedSub struct {
	user       string
	exercise   string
	season     string
	finalScore int
	complexity int
	timeMs     int64
}

func seedAccepted(subs []acceptedSub) {
	for i, s := range subs {
		final := s.finalScore
		var seasonID *string
		if s.season != "" {
			id := s.season
			seasonID = &id
		}
		database.DB.Create(&models.Submission{
			ID:              fmt.Sprintf("sub%d", i),
			UserID:          s.user,
			ExerciseID:      s.exercise,
			SeasonID:        seasonID,
			Status:          models.SubStatusAccepted,
			TestScore:       s.finalScore,
			ComplexityScore: s.complexity,
			FinalScore:      &final,
			TimeSpentMs:     s.timeMs,
			CreatedAt:       time.Now().Add(time.Duration(i) * time.Second),
		})
	}
}

func seedLeaderboardUsers(n int) {
	for i := 1; i <= n; i++ {
		database.DB.Create(&models.User{
			ID:     fmt.Sprintf("user%d", i),
			Name:   fmt.Sprintf("User %d", i),
			Handle: fmt.Sprintf("user%d", i),
			Email:  fmt.Sprintf("user%d@example.com", i),
		})
	}
}

func TestGetLeaderboard_TieBreakByTime(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(2)
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 100, complexity: 50, timeMs: 1000},
		{user: "user2", exercise: "ex1", finalScore: 100, complexity: 50, timeMs: 500},
	})

	entries, err := GetLeaderboard(DimensionGeneral, "", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	// Faster solve wins the tie
	assert.Equal(t, "user2", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "user1", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Position)
}

func TestGetLeaderboard_OneEntryPerUser(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(1)
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 70, complexity: 40, timeMs: 900},
		{user: "user1", exercise: "ex2", finalScore: 95, complexity: 30, timeMs: 2000},
		{user: "user1", exercise: "ex3", finalScore: 95, complexity: 60, timeMs: 1000},
	})

	entries, err := GetLeaderboard(DimensionGeneral, "", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	// Best submission by the ranking order, not the most recent
	assert.Equal(t, 95, entries[0].Points)
	assert.Equal(t, 60, entries[0].ComplexityScore)
}

func TestGetLeaderboard_PositionsSurvivePagination(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(3)
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 100, complexity: 50, timeMs: 100},
		{user: "user2", exercise: "ex1", finalScore: 90, complexity: 50, timeMs: 100},
		{user: "user3", exercise: "ex1", finalScore: 80, complexity: 50, timeMs: 100},
	})

	entries, err := GetLeaderboard(DimensionGeneral, "", 1, 1)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	// Window-local index is 0, but the reported position is global
	assert.Equal(t, 2, entries[0].Position)
	assert.Equal(t, "user2", entries[0].UserID)
}

func TestGetLeaderboard_StableAcrossCalls(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(4)
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 90, complexity: 50, timeMs: 100},
		{user: "user2", exercise: "ex1", finalScore: 90, complexity: 50, timeMs: 100},
		{user: "user3", exercise: "ex1", finalScore: 90, complexity: 50, timeMs: 100},
		{user: "user4", exercise: "ex1", finalScore: 90, complexity: 50, timeMs: 100},
	})

	first, err := GetLeaderboard(DimensionGeneral, "", 0, 10)
	assert.NoError(t, err)

	InvalidateLeaderboards() // force recompute, not a cache hit
	second, err := GetLeaderboard(DimensionGeneral, "", 0, 10)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetLeaderboard_MissingDimensionID(t *testing.T) {
	SetupTestDB()

	for _, dim := range []Dimension{DimensionLanguage, DimensionSeason, DimensionCollege, DimensionGroup} {
		_, err := GetLeaderboard(dim, "", 0, 10)
		assert.True(t, apperrors.IsBadRequest(err), "dimension %s should require an id", dim)
	}
}

func TestGetLeaderboard_UnknownDimension(t *testing.T) {
	SetupTestDB()

	_, err := GetLeaderboard(Dimension("galaxy"), "x", 0, 10)
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestGetLeaderboard_SeasonDimension(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(2)
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", season: "season1", finalScore: 80, complexity: 50, timeMs: 100},
		{user: "user2", exercise: "ex1", finalScore: 100, complexity: 50, timeMs: 100},
	})

	entries, err := GetLeaderboard(DimensionSeason, "season1", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "user1", entries[0].UserID)
}

func TestGetLeaderboard_LanguageDimension(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(2)
	database.DB.Create(&models.Language{ID: "go", Name: "Go", Slug: "go"})
	database.DB.Create(&models.Language{ID: "py", Name: "Python", Slug: "python"})
	database.DB.Create(&models.Exercise{ID: "ex-go", Status: models.ExerciseStatusPublished, LanguageID: "go"})
	database.DB.Create(&models.Exercise{ID: "ex-py", Status: models.ExerciseStatusPublished, LanguageID: "py"})
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex-go", finalScore: 80, complexity: 50, timeMs: 100},
		{user: "user2", exercise: "ex-py", finalScore: 100, complexity: 50, timeMs: 100},
	})

	entries, err := GetLeaderboard(DimensionLanguage, "go", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "user1", entries[0].UserID)
}

func TestGetLeaderboard_CollegeDimension(t *testing.T) {
	SetupTestDB()
	database.DB.Create(&models.College{ID: "c1", Name: "Tech U", Slug: "tech-u"})
	collegeID := "c1"
	database.DB.Create(&models.User{ID: "user1", Handle: "u1", Email: "u1@example.com", CollegeID: &collegeID})
	database.DB.Create(&models.User{ID: "user2", Handle: "u2", Email: "u2@example.com"})
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 80, complexity: 50, timeMs: 100},
		{user: "user2", exercise: "ex1", finalScore: 100, complexity: 50, timeMs: 100},
	})

	entries, err := GetLeaderboard(DimensionCollege, "c1", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "user1", entries[0].UserID)
	assert.NotNil(t, entries[0].CollegeID)
}

func TestGetLeaderboard_GroupDimension(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(2)
	database.DB.Create(&models.Group{ID: "g1", Name: "Algo Club", OwnerID: "user1"})
	database.DB.Create(&models.GroupMember{GroupID: "g1", UserID: "user1", JoinedAt: time.Now()})
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 80, complexity: 50, timeMs: 100},
		{user: "user2", exercise: "ex1", finalScore: 100, complexity: 50, timeMs: 100},
	})

	entries, err := GetLeaderboard(DimensionGroup, "g1", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "user1", entries[0].UserID)
}

func TestGetLeaderboard_IgnoresRejected(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(1)
	database.DB.Create(&models.Submission{
		ID:         "rejected",
		UserID:     "user1",
		ExerciseID: "ex1",
		Status:     models.SubStatusRejected,
		TestScore:  30,
		CreatedAt:  time.Now(),
	})

	entries, err := GetLeaderboard(DimensionGeneral, "", 0, 10)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetLeaderboard_LimitCapped(t *testing.T) {
	SetupTestDB()
	seedLeaderboardUsers(1)
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 80, complexity: 50, timeMs: 100},
	})

	entries, err := GetLeaderboard(DimensionGeneral, "", 0, 10_000)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetLeaderboard_LimitCapFromConfig(t *testing.T) {
	SetupTestDB()
	config.AppConfig = &config.Config{LeaderboardMaxLimit: 1}
	t.Cleanup(func() { config.AppConfig = nil })

	seedLeaderboardUsers(2)
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 100, complexity: 50, timeMs: 100},
		{user: "user2", exercise: "ex1", finalScore: 90, complexity: 50, timeMs: 100},
	})

	entries, err := GetLeaderboard(DimensionGeneral, "", 0, 50)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetLeaderboard_WritesOrderingToRedis(t *testing.T) {
	SetupTestDB()
	store := stubRedisCache(t)

	seedLeaderboardUsers(1)
	seedAccepted([]acceptedSub{
		{user: "user1", exercise: "ex1", finalScore: 80, complexity: 50, timeMs: 100},
	})

	_, err := GetLeaderboard(DimensionGeneral, "", 0, 10)
	assert.NoError(t, err)

	raw, ok := store["leaderboard:general:"]
	assert.True(t, ok, "full ordering should land in redis")

	var cached []RankEntry
	assert.NoError(t, json.Unmarshal(raw, &cached))
	assert.Len(t, cached, 1)
	assert.Equal(t, "user1", cached[0].UserID)
}

func TestGetLeaderboard_ServesFromRedis(t *testing.T) {
	SetupTestDB()
	store := stubRedisCache(t)

	// Ordering computed elsewhere; no submissions in this instance's DB
	remote := []RankEntry{{Position: 1, UserID: "remote-user", Handle: "remote", Points: 99}}
	raw, _ := json.Marshal(remote)
	store["leaderboard:general:"] = raw

	entries, err := GetLeaderboard(DimensionGeneral, "", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "remote-user", entries[0].UserID)
	assert.Equal(t, 99, entries[0].Points)
}

func TestInvalidateLeaderboards_DropsRedisKeys(t *testing.T) {
	SetupTestDB()
	store := stubRedisCache(t)
	store["leaderboard:general:"] = []byte("[]")
	store["leaderboard:season:season1"] = []byte("[]")
	store["unrelated:key"] = []byte("[]")

	InvalidateLeaderboards()

	assert.NotContains(t, store, "leaderboard:general:")
	assert.NotContains(t, store, "leaderboard:season:season1")
	assert.Contains(t, store, "unrelated:key")
}
