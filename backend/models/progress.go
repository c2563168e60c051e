package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Progress is one exercise completion. At most one row exists per
// (user, exercise); a re-save updates the row in place.
type Progress struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"not null;uniqueIndex:idx_user_exercise"`
	ExerciseID string `gorm:"not null;uniqueIndex:idx_user_exercise"`
	CourseID   string `gorm:"not null"`

	// Completion data
	Code         string `gorm:"type:text"` // user's solution code
	PointsEarned int    `gorm:"default:0"` // frozen at first completion
	Attempts     int    `gorm:"default:1"`

	StartedAt   time.Time
	CompletedAt time.Time
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Progress) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"id":           p.ID,
		"userId":       p.UserID,
		"exerciseId":   p.ExerciseID,
		"courseId":     p.CourseID,
		"code":         p.Code,
		"pointsEarned": p.PointsEarned,
		"attempts":     p.Attempts,
		"completedAt":  p.CompletedAt.Format(time.RFC3339),
	}
}

// DailyStreak is the per-user per-day activity rollup used to detect
// "already active today" and "active yesterday".
type DailyStreak struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"not null;uniqueIndex:idx_user_date"`
	Date           string `gorm:"not null;uniqueIndex:idx_user_date"` // YYYY-MM-DD
	ExercisesCount int    `gorm:"default:0"`
	PointsEarned   int    `gorm:"default:0"`

	CreatedAt time.Time
}

func (d *DailyStreak) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
