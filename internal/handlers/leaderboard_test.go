package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitinDemarque/codearena-backend/internal/database"
	"github.com/VitinDemarque/codearena-backend/internal/models"
	"github.com/VitinDemarque/codearena-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func seedBoard() {
	database.DB.Create(&models.User{ID: "user1", Name: "Alice", Handle: "alice", Email: "alice@example.com"})
	database.DB.Create(&models.User{ID: "user2", Name: "Bob", Handle: "bob", Email: "bob@example.com"})

	hundred := 100
	database.DB.Create(&models.Submission{
		ID: "s1", UserID: "user1", ExerciseID: "ex1",
		Status: models.SubStatusAccepted, TestScore: 100, FinalScore: &hundred,
		ComplexityScore: 50, TimeSpentMs: 1000, CreatedAt: time.Now(),
	})
	database.DB.Create(&models.Submission{
		ID: "s2", UserID: "user2", ExerciseID: "ex1",
		Status: models.SubStatusAccepted, TestScore: 100, FinalScore: &hundred,
		ComplexityScore: 50, TimeSpentMs: 500, CreatedAt: time.Now(),
	})
}

func TestGetLeaderboardHandler_General(t *testing.T) {
	SetupTestDB()
	services.InvalidateLeaderboards()
	seedBoard()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/leaderboards/general", nil)
	c.Params = gin.Params{{Key: "dimension", Value: "general"}}

	GetLeaderboard(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries []services.RankEntry `json:"entries"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, "bob", resp.Entries[0].Handle)
	assert.Equal(t, 1, resp.Entries[0].Position)
}

func TestGetLeaderboardHandler_MissingDimensionID(t *testing.T) {
	SetupTestDB()
	services.InvalidateLeaderboards()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/leaderboards/language", nil)
	c.Params = gin.Params{{Key: "dimension", Value: "language"}}

	GetLeaderboard(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
