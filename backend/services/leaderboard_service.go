package services

import (
	"pylearn/backend/models"

	"gorm.io/gorm"
)

const defaultLeaderboardLimit = 50

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

type LeaderboardEntry struct {
	Rank               int    `json:"rank"`
	ID                 string `json:"id"`
	Username           string `json:"username"`
	DisplayName        string `json:"displayName"`
	Avatar             string `json:"avatar"`
	TotalPoints        int    `json:"totalPoints"`
	ExercisesCompleted int    `json:"exercisesCompleted"`
	CurrentStreak      int    `json:"currentStreak"`
}

// Top returns the highest-scoring users. Ties break on created_at so the
// ordering is deterministic; rank is the 1-based position in the result.
func (s *LeaderboardService) Top(limit int) ([]LeaderboardEntry, error) {
	if limit < 1 {
		limit = defaultLeaderboardLimit
	}

	var users []models.User
	err := s.DB.Order("total_points DESC, created_at ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		displayName := user.DisplayName
		if displayName == "" {
			displayName = user.Username
		}
		entries[i] = LeaderboardEntry{
			Rank:               i + 1,
			ID:                 user.ID,
			Username:           user.Username,
			DisplayName:        displayName,
			Avatar:             user.Avatar,
			TotalPoints:        user.TotalPoints,
			ExercisesCompleted: user.ExercisesCompleted,
			CurrentStreak:      user.CurrentStreak,
		}
	}
	return entries, nil
}
