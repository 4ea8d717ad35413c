package models

import "time"

type BadgeCategory string

const (
	BadgeCategorySystem BadgeCategory = "SYSTEM"
	BadgeCategorySkill  BadgeCategory = "SKILL"
)

type Badge struct {
	ID          string        `gorm:"primaryKey;type:text" json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"` // Name of the Lucide icon
	Category    BadgeCategory `gorm:"type:text;default:'SYSTEM'" json:"category"`
	Condition   string        `json:"condition"` // e.g. "5_solved"
	Threshold   int           `json:"threshold"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge is unique per (user, badge); a repeated grant never rewrites
// AwardedAt, only the mutable Source field.
type UserBadge struct {
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	BadgeID   string    `gorm:"primaryKey;type:text" json:"badgeId"`
	Source    string    `json:"source"`
	AwardedAt time.Time `json:"awardedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

type Title struct {
	ID          string `gorm:"primaryKey;type:text" json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (Title) TableName() string {
	return "titles"
}

// UserTitle carries an Active flag; keeping at most one title worn is the
// caller's job, not this engine's.
type UserTitle struct {
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	TitleID   string    `gorm:"primaryKey;type:text" json:"titleId"`
	Active    bool      `gorm:"default:false" json:"active"`
	AwardedAt time.Time `json:"awardedAt"`

	Title Title `gorm:"foreignKey:TitleID" json:"title"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (UserTitle) TableName() string {
	return "user_titles"
}
