package services

import (
	"time"

	"gorm.io/gorm"

	"lifetrack/internal/dashboard"
	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
)

type dashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db, now: time.Now}
}

// GetDashboard loads the user's records and aggregates them in the user's
// preferred currency.
func (s *dashboardService) GetDashboard(userID string) (*Dashboard, error) {
	user, err := loadUserForUpdate(s.db, userID)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var activities []models.Activity
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	metrics := dashboard.Aggregate(dashboard.Input{
		Transactions: toDashboardTransactions(transactions),
		Goals:        toDashboardGoals(goals),
		Activities:   toDashboardActivities(activities),
		BaseCurrency: user.Preferences.Currency,
		Now:          s.now(),
	})

	return &Dashboard{Metrics: metrics, Streaks: user.Streaks}, nil
}

func toDashboardGoals(goals []models.Goal) []dashboard.Goal {
	out := make([]dashboard.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, dashboard.Goal{
			ID:      g.ID,
			Title:   g.Title,
			Target:  g.TargetValue,
			Current: g.CurrentValue,
		})
	}
	return out
}

func toDashboardActivities(activities []models.Activity) []dashboard.Activity {
	out := make([]dashboard.Activity, 0, len(activities))
	for _, a := range activities {
		out = append(out, dashboard.Activity{
			ID:              a.ID,
			Name:            a.Name,
			Frequency:       string(a.Frequency),
			Streak:          a.Streak,
			LastCompletedAt: a.LastCompletedAt,
		})
	}
	return out
}
