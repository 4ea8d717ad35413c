package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/VitinDemarque/codearena-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB() {
	logger.Init("test")
	gin.SetMode(gin.TestMode)

	db, _ := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.College{},
		&models.Group{},
		&models.GroupMember{},
		&models.Language{},
		&models.Exercise{},
		&models.Season{},
		&models.LevelRule{},
		&models.Submission{},
		&models.UserStat{},
		&models.ExerciseStat{},
		&models.SolveEvent{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Title{},
		&models.UserTitle{},
	)
}

func jsonRequest(method, uri string, body interface{}) *http.Request {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, uri, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateSubmissionHandler_Accepted(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "user1", Handle: "tester", Email: "tester@example.com"})
	database.DB.Create(&models.Exercise{
		ID:         "ex1",
		Status:     models.ExerciseStatusPublished,
		BaseXP:     100,
		Difficulty: 2,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/api/submissions", map[string]interface{}{
		"exerciseId":  "ex1",
		"code":        "print(1+2)",
		"score":       90,
		"timeSpentMs": 60000,
	})
	c.Set("userId", "user1")

	CreateSubmission(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ACCEPTED")
}

func TestCreateSubmissionHandler_NotPublished(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "user1", Handle: "tester", Email: "tester@example.com"})
	database.DB.Create(&models.Exercise{ID: "ex1", Status: models.ExerciseStatusDraft})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/api/submissions", map[string]interface{}{
		"exerciseId": "ex1",
		"score":      90,
	})
	c.Set("userId", "user1")

	CreateSubmission(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSubmissionHandler_ExerciseMissing(t *testing.T) {
	SetupTestDB()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/api/submissions", map[string]interface{}{
		"exerciseId": "nope",
		"score":      90,
	})
	c.Set("userId", "user1")

	CreateSubmission(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSubmissionHandler_Unauthorized(t *testing.T) {
	SetupTestDB()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/api/submissions", map[string]interface{}{"exerciseId": "ex1"})

	CreateSubmission(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUserSubmissionsHandler(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Submission{ID: "s1", UserID: "user1", ExerciseID: "ex1", Status: models.SubStatusAccepted, CreatedAt: time.Now()})
	database.DB.Create(&models.Submission{ID: "s2", UserID: "user1", ExerciseID: "ex2", Status: models.SubStatusRejected, CreatedAt: time.Now()})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/submissions/user/user1", nil)
	c.Params = gin.Params{{Key: "userId", Value: "user1"}}

	ListUserSubmissions(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.Submission `json:"items"`
		Total int64               `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Items, 2)
}

func TestCreateExerciseHandler_GrantsAuthorBadge(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "user1", Handle: "author", Email: "author@example.com"})
	database.DB.Create(&models.Language{ID: "lang1", Name: "Python", Slug: "python"})
	database.DB.Create(&models.Badge{ID: "badge-author", Name: "Exercise Author", Condition: "exercises_created", Threshold: 1})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest("POST", "/api/exercises", map[string]interface{}{
		"title":      "Two Sum",
		"baseXp":     100,
		"difficulty": 2,
		"languageId": "lang1",
	})
	c.Set("userId", "user1")

	CreateExercise(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	// The created counter and the badge check both run on the create path
	var stat models.UserStat
	assert.NoError(t, database.DB.First(&stat, "user_id = ?", "user1").Error)
	assert.Equal(t, 1, stat.ExercisesCreatedCount)

	var badge models.UserBadge
	assert.NoError(t, database.DB.First(&badge, "user_id = ? AND badge_id = ?", "user1", "badge-author").Error)
}
