package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
	"lifetrack/internal/streak"
)

type activityService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db, now: time.Now}
}

// CreateActivity creates a recurring activity with a zero streak.
func (s *activityService) CreateActivity(userID string, input CreateActivityInput) (*models.Activity, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}

	frequency := input.Frequency
	if frequency == "" {
		frequency = models.ActivityFrequencyDaily
	}
	if !validActivityFrequency(frequency) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid activity frequency")
	}

	activity := &models.Activity{
		UserID:    userID,
		Name:      name,
		Frequency: frequency,
		Notes:     input.Notes,
		Icon:      input.Icon,
	}
	if err := s.db.Create(activity).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return activity, nil
}

// GetUserActivities lists the user's activities, newest first.
func (s *activityService) GetUserActivities(userID string) ([]models.Activity, error) {
	var activities []models.Activity
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return activities, nil
}

// GetActivityByID returns an activity with its completion log.
func (s *activityService) GetActivityByID(userID, activityID string) (*models.Activity, error) {
	var activity models.Activity
	err := s.db.Preload("Completions", func(db *gorm.DB) *gorm.DB {
		return db.Order("completed_at ASC")
	}).Where("id = ? AND user_id = ?", activityID, userID).First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrActivityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &activity, nil
}

func findActivity(tx *gorm.DB, userID, activityID string) (*models.Activity, error) {
	var activity models.Activity
	if err := tx.Where("id = ? AND user_id = ?", activityID, userID).First(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrActivityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &activity, nil
}

// UpdateActivity applies a partial update. The streak is not touched.
func (s *activityService) UpdateActivity(userID, activityID string, input UpdateActivityInput) (*models.Activity, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name cannot be empty")
	}
	if input.Frequency != nil && !validActivityFrequency(*input.Frequency) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid activity frequency")
	}

	var activity *models.Activity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		a, err := findActivity(tx, userID, activityID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			a.Name = strings.TrimSpace(*input.Name)
		}
		if input.Frequency != nil {
			a.Frequency = *input.Frequency
		}
		if input.Notes != nil {
			a.Notes = *input.Notes
		}
		if input.Icon != nil {
			a.Icon = *input.Icon
		}
		if err := tx.Save(a).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		activity = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// DeleteActivity soft-deletes an activity owned by the user.
func (s *activityService) DeleteActivity(userID, activityID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := findActivity(tx, userID, activityID)
		if err != nil {
			return err
		}
		if err := tx.Delete(activity).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// CompleteActivity marks the activity done now, updating its own streak and
// the user's activity streak.
func (s *activityService) CompleteActivity(userID, activityID, note string) (*models.Activity, error) {
	now := s.now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := findActivity(tx, userID, activityID)
		if err != nil {
			return err
		}

		activity.Streak = streak.NextActivityStreak(activity.Streak, activity.LastCompletedAt, now, streak.Frequency(activity.Frequency))
		activity.LastCompletedAt = &now
		if err := tx.Save(activity).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		completion := &models.ActivityCompletion{
			ActivityID:  activity.ID,
			CompletedAt: now,
			Note:        strings.TrimSpace(note),
		}
		if err := tx.Create(completion).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return advanceUserStreak(tx, userID, models.StreakActivities, now)
	})
	if err != nil {
		return nil, err
	}
	return s.GetActivityByID(userID, activityID)
}

func validActivityFrequency(f models.ActivityFrequency) bool {
	switch f {
	case models.ActivityFrequencyDaily, models.ActivityFrequencyWeekly, models.ActivityFrequencyCustom:
		return true
	}
	return false
}
