package services

import (
	"errors"
	"time"

	"pylearn/backend/models"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type ProgressService struct {
	DB *gorm.DB
	// Now is the clock used for day bookkeeping, overridable in tests
	Now func() time.Time
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db, Now: time.Now}
}

type SaveProgressInput struct {
	ExerciseID   string `json:"exerciseId"`
	CourseID     string `json:"courseId"`
	Code         string `json:"code"`
	PointsEarned int    `json:"pointsEarned"`
}

// Save records an exercise completion. A repeat save for the same exercise
// overwrites the stored code and bumps the attempts counter but never touches
// user totals or the streak. A first save adds points, increments the
// completed count and rolls the daily activity forward, running the streak
// transition when this is the user's first completion of the day. The whole
// read-modify-write runs in one transaction so a double submit cannot
// double-count points.
func (s *ProgressService) Save(userID string, in SaveProgressInput) (*models.Progress, error) {
	var record models.Progress

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := s.Now().UTC()

		err := tx.Where("user_id = ? AND exercise_id = ?", userID, in.ExerciseID).
			First(&record).Error
		if err == nil {
			// Re-attempt: points stay frozen at the first completion
			record.Code = in.Code
			record.Attempts++
			record.CompletedAt = now
			return tx.Save(&record).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		record = models.Progress{
			UserID:       userID,
			ExerciseID:   in.ExerciseID,
			CourseID:     in.CourseID,
			Code:         in.Code,
			PointsEarned: in.PointsEarned,
			Attempts:     1,
			StartedAt:    now,
			CompletedAt:  now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		user.TotalPoints += in.PointsEarned
		user.ExercisesCompleted++

		today := now.Format(dateLayout)
		var daily models.DailyStreak
		err = tx.Where("user_id = ? AND date = ?", userID, today).First(&daily).Error
		switch {
		case err == nil:
			// Already active today, streak was handled earlier
			daily.ExercisesCount++
			daily.PointsEarned += in.PointsEarned
			if err := tx.Save(&daily).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First completion of the day: run the streak transition
			yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
			var count int64
			if err := tx.Model(&models.DailyStreak{}).
				Where("user_id = ? AND date = ?", userID, yesterday).
				Count(&count).Error; err != nil {
				return err
			}

			user.CurrentStreak, user.LongestStreak =
				UpdateStreak(user.CurrentStreak, user.LongestStreak, count > 0)

			daily = models.DailyStreak{
				UserID:         userID,
				Date:           today,
				ExercisesCount: 1,
				PointsEarned:   in.PointsEarned,
			}
			if err := tx.Create(&daily).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all progress records for the user, oldest completion first.
func (s *ProgressService) List(userID string) ([]models.Progress, error) {
	var records []models.Progress
	err := s.DB.Where("user_id = ?", userID).
		Order("completed_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Get returns the record for one exercise, or ErrNotFound on a valid miss.
func (s *ProgressService) Get(userID, exerciseID string) (*models.Progress, error) {
	var record models.Progress
	err := s.DB.Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
