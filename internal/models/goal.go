package models

import (
	"time"

	"lifetrack/internal/uuid"

	"gorm.io/gorm"
)

// GoalFrequency is how often progress on a goal is expected.
type GoalFrequency string

const (
	GoalFrequencyDaily   GoalFrequency = "daily"
	GoalFrequencyWeekly  GoalFrequency = "weekly"
	GoalFrequencyMonthly GoalFrequency = "monthly"
	GoalFrequencyOneTime GoalFrequency = "one-time"
)

// Goal is a numeric target the user works towards.
type Goal struct {
	Base
	UserID       string              `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string              `gorm:"not null" json:"title"`
	Description  string              `json:"description"`
	TargetValue  float64             `gorm:"type:numeric(14,2);not null" json:"target_value"`
	CurrentValue float64             `gorm:"type:numeric(14,2);not null" json:"current_value"`
	Frequency    GoalFrequency       `gorm:"size:10;not null" json:"frequency"`
	Deadline     *time.Time          `json:"deadline,omitempty"`
	Category     string              `json:"category"`
	IsCompleted  bool                `json:"is_completed"`
	History      []GoalProgressEntry `gorm:"foreignKey:GoalID" json:"progress_history,omitempty"`
}

// RefreshCompletion recomputes IsCompleted as current >= target. A zero
// target is met immediately.
func (g *Goal) RefreshCompletion() {
	g.IsCompleted = g.CurrentValue >= g.TargetValue
}

// GoalProgressEntry is an immutable record of a progress update.
type GoalProgressEntry struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID     string    `gorm:"type:uuid;not null;index" json:"goal_id"`
	Value      float64   `gorm:"type:numeric(14,2);not null" json:"value"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
}

// TableName overrides the default table name.
func (GoalProgressEntry) TableName() string { return "goal_progress_entries" }

// BeforeCreate hook generates a UUIDv7 for new records
func (e *GoalProgressEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New()
	}
	return nil
}
