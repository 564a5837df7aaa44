package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"lifetrack/internal/classifier"
	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
)

type goalService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db, now: time.Now}
}

// CreateGoal creates a goal for the user.
func (s *goalService) CreateGoal(userID string, input CreateGoalInput) (*models.Goal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if err := validateGoalValue("target_value", input.TargetValue); err != nil {
		return nil, err
	}
	if err := validateGoalValue("current_value", input.CurrentValue); err != nil {
		return nil, err
	}

	frequency := input.Frequency
	if frequency == "" {
		frequency = models.GoalFrequencyMonthly
	}
	if !validGoalFrequency(frequency) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid goal frequency")
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = classifier.DefaultCategory
	}

	goal := &models.Goal{
		UserID:       userID,
		Title:        title,
		Description:  input.Description,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		Frequency:    frequency,
		Deadline:     input.Deadline,
		Category:     category,
	}
	goal.RefreshCompletion()

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals lists the user's goals, newest first.
func (s *goalService) GetUserGoals(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoalByID returns a goal with its progress history.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("recorded_at ASC")
	}).Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

func findGoal(tx *gorm.DB, userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies a partial update and recomputes completion.
func (s *goalService) UpdateGoal(userID, goalID string, input UpdateGoalInput) (*models.Goal, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title cannot be empty")
	}
	if input.TargetValue != nil {
		if err := validateGoalValue("target_value", *input.TargetValue); err != nil {
			return nil, err
		}
	}
	if input.CurrentValue != nil {
		if err := validateGoalValue("current_value", *input.CurrentValue); err != nil {
			return nil, err
		}
	}
	if input.Frequency != nil && !validGoalFrequency(*input.Frequency) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid goal frequency")
	}

	var goal *models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		g, err := findGoal(tx, userID, goalID)
		if err != nil {
			return err
		}

		if input.Title != nil {
			g.Title = strings.TrimSpace(*input.Title)
		}
		if input.Description != nil {
			g.Description = *input.Description
		}
		if input.TargetValue != nil {
			g.TargetValue = *input.TargetValue
		}
		if input.CurrentValue != nil {
			g.CurrentValue = *input.CurrentValue
		}
		if input.Frequency != nil {
			g.Frequency = *input.Frequency
		}
		if input.Deadline != nil {
			g.Deadline = input.Deadline
		}
		if input.Category != nil && strings.TrimSpace(*input.Category) != "" {
			g.Category = strings.TrimSpace(*input.Category)
		}
		g.RefreshCompletion()

		if err := tx.Save(g).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		goal = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal soft-deletes a goal owned by the user.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		goal, err := findGoal(tx, userID, goalID)
		if err != nil {
			return err
		}
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// RecordProgress sets the goal's current value, appends a history entry and
// advances the user's goal streak.
func (s *goalService) RecordProgress(userID, goalID string, value float64, note string) (*models.Goal, error) {
	if err := validateGoalValue("value", value); err != nil {
		return nil, err
	}

	now := s.now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		goal, err := findGoal(tx, userID, goalID)
		if err != nil {
			return err
		}

		goal.CurrentValue = value
		goal.RefreshCompletion()
		if err := tx.Save(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		entry := &models.GoalProgressEntry{
			GoalID:     goal.ID,
			Value:      value,
			Note:       strings.TrimSpace(note),
			RecordedAt: now,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return advanceUserStreak(tx, userID, models.StreakGoals, now)
	})
	if err != nil {
		return nil, err
	}
	return s.GetGoalByID(userID, goalID)
}

func validateGoalValue(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be a non-negative number")
	}
	return nil
}

func validGoalFrequency(f models.GoalFrequency) bool {
	switch f {
	case models.GoalFrequencyDaily, models.GoalFrequencyWeekly, models.GoalFrequencyMonthly, models.GoalFrequencyOneTime:
		return true
	}
	return false
}
