package models

import "time"

type SubmissionStatus string

const (
	SubStatusPending  SubmissionStatus = "PENDING"
	SubStatusAccepted SubmissionStatus = "ACCEPTED"
	SubStatusRejected SubmissionStatus = "REJECTED"
)

// Submission is created once per submit call and never edited afterwards;
// resubmission creates a new record.
type Submission struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID     string    `gorm:"index" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ExerciseID string    `gorm:"index" json:"exerciseId"`
	Exercise   *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`

	// Nil when no season window contained the submit instant
	SeasonID *string `gorm:"index" json:"seasonId"`

	Code string `gorm:"type:text" json:"code"`

	Status SubmissionStatus `gorm:"type:text;default:'PENDING'" json:"status"`

	// Score is the sandbox test score (0-100). TestScore keeps the raw value
	// alongside the eventual FinalScore so reranking stays reproducible.
	Score     int `json:"score"`
	TestScore int `json:"testScore"`

	ComplexityScore int `json:"complexityScore"`
	BonusPoints     int `json:"bonusPoints"`

	// Set only once the submission is ACCEPTED
	FinalScore *int `json:"finalScore"`

	// Complexity metrics derived from the submitted code
	CyclomaticComplexity int  `json:"cyclomaticComplexity"`
	LinesOfCode          int  `json:"linesOfCode"`
	MaxNestingDepth      int  `json:"maxNestingDepth"`
	HasRecursion         bool `json:"hasRecursion"`

	TimeSpentMs int64 `gorm:"column:time_spent_ms" json:"timeSpentMs"`

	// Set only when ACCEPTED
	XPAwarded *int `gorm:"column:xp_awarded" json:"xpAwarded"`
}

func (Submission) TableName() string {
	return "submissions"
}
