package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string `gorm:"primaryKey"`
	Email       string `gorm:"uniqueIndex;not null"`
	Username    string `gorm:"uniqueIndex;not null"`
	DisplayName string
	// PasswordHash is empty for OAuth-only accounts
	PasswordHash string
	Avatar       string

	OAuthProvider string // "google", "github" or empty
	OAuthID       string

	// Stats (denormalized for performance, kept in sync by the progress save path)
	TotalPoints        int `gorm:"default:0"`
	ExercisesCompleted int `gorm:"default:0"`
	CurrentStreak      int `gorm:"default:0"`
	LongestStreak      int `gorm:"default:0"`

	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	LastLogin *time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ToJSON is the public user shape returned by the API. The password hash and
// OAuth ids never leave the server.
func (u *User) ToJSON() map[string]interface{} {
	displayName := u.DisplayName
	if displayName == "" {
		displayName = u.Username
	}
	return map[string]interface{}{
		"id":          u.ID,
		"email":       u.Email,
		"username":    u.Username,
		"displayName": displayName,
		"avatar":      u.Avatar,
		"role":        "student",
		"createdAt":   u.CreatedAt.Format(time.RFC3339),
		"stats": map[string]interface{}{
			"totalPoints":        u.TotalPoints,
			"exercisesCompleted": u.ExercisesCompleted,
			"currentStreak":      u.CurrentStreak,
			"longestStreak":      u.LongestStreak,
			"rank":               0, // calculated by the leaderboard, not stored
			"badges":             []string{},
		},
	}
}
