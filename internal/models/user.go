package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name   string `json:"name"`
	Handle string `gorm:"uniqueIndex" json:"handle"`
	Email  string `gorm:"uniqueIndex" json:"email"`
	Bio    string `json:"bio"`

	Role Role `gorm:"type:text;default:'USER'" json:"role"`

	// Progression state owned by the scoring engine.
	// XPTotal only ever grows; Level is re-derived on every XP credit.
	XPTotal int64 `gorm:"column:xp_total;default:0" json:"xpTotal"`
	Level   int   `gorm:"default:1" json:"level"`

	CollegeID *string  `json:"collegeId"`
	College   *College `gorm:"foreignKey:CollegeID" json:"college,omitempty"`

	PreferredLanguages pq.StringArray `gorm:"type:text[]" json:"preferredLanguages"`
}

func (User) TableName() string {
	return "users"
}

type College struct {
	ID   string `gorm:"primaryKey;type:text" json:"id"`
	Name string `json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`

	CreatedAt time.Time `json:"createdAt"`
}

func (College) TableName() string {
	return "colleges"
}

type Group struct {
	ID          string `gorm:"primaryKey;type:text" json:"id"`
	Name        string `json:"name"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     string `json:"ownerId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember links a user to a group. Membership administration lives in a
// neighboring service; the leaderboard engine only reads these rows.
type GroupMember struct {
	GroupID  string    `gorm:"primaryKey;type:text" json:"groupId"`
	UserID   string    `gorm:"primaryKey;type:text" json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
