package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
	"lifetrack/internal/notify"
)

type notificationService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db, now: time.Now}
}

// GetNotifications derives the user's current reminders. Nothing is stored.
func (s *notificationService) GetNotifications(userID string) ([]notify.Notification, error) {
	user, err := loadUserForUpdate(s.db, userID)
	if err != nil {
		return nil, err
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ? AND is_completed = ?", userID, false).
		Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var activities []models.Activity
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	in := notify.Input{
		DailyReminder:       user.Preferences.DailyReminder,
		LastExpenseLoggedAt: user.LastExpenseLoggedAt,
		Now:                 s.now(),
	}
	for _, g := range goals {
		in.Goals = append(in.Goals, notify.Goal{
			ID:        g.ID,
			Title:     g.Title,
			Deadline:  g.Deadline,
			Completed: g.IsCompleted,
		})
	}
	for _, a := range activities {
		in.Activities = append(in.Activities, notify.Activity{
			ID:              a.ID,
			Name:            a.Name,
			Frequency:       string(a.Frequency),
			LastCompletedAt: a.LastCompletedAt,
		})
	}

	var latest models.Transaction
	err = s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&latest).Error
	switch {
	case err == nil:
		in.LatestTransaction = &notify.Transaction{
			ID:           latest.ID,
			Type:         string(latest.Type),
			AIConfidence: latest.AIConfidence,
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return notify.Build(in), nil
}
