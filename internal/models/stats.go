package models

import "time"

// UserStat holds per-user running counters maintained by the stats
// aggregator. Rows are upserted on create/solve events and never deleted.
type UserStat struct {
	UserID                string    `gorm:"primaryKey;type:text" json:"userId"`
	ExercisesCreatedCount int       `gorm:"default:0" json:"exercisesCreatedCount"`
	ExercisesSolvedCount  int       `gorm:"default:0" json:"exercisesSolvedCount"`
	LastUpdatedAt         time.Time `json:"lastUpdatedAt"`
}

func (UserStat) TableName() string {
	return "user_stats"
}

// ExerciseStat tracks solve volume and a running mean score so we never
// need the full score history.
type ExerciseStat struct {
	ExerciseID  string    `gorm:"primaryKey;type:text" json:"exerciseId"`
	SolvesCount int       `gorm:"default:0" json:"solvesCount"`
	AvgScore    float64   `gorm:"default:0" json:"avgScore"`
	LastSolveAt time.Time `json:"lastSolveAt"`
}

func (ExerciseStat) TableName() string {
	return "exercise_stats"
}

// SolveEvent is the idempotency ledger for stats updates. One row per
// accepted submission; a replayed RecordSolved for the same submission hits
// the primary key and increments nothing.
type SolveEvent struct {
	SubmissionID string    `gorm:"primaryKey;type:text" json:"submissionId"`
	UserID       string    `gorm:"index" json:"userId"`
	ExerciseID   string    `gorm:"index" json:"exerciseId"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (SolveEvent) TableName() string {
	return "solve_events"
}
