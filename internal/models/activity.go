package models

import (
	"time"

	"lifetrack/internal/uuid"

	"gorm.io/gorm"
)

// ActivityFrequency is the cadence of a recurring activity.
type ActivityFrequency string

const (
	ActivityFrequencyDaily  ActivityFrequency = "daily"
	ActivityFrequencyWeekly ActivityFrequency = "weekly"
	ActivityFrequencyCustom ActivityFrequency = "custom"
)

// Activity is a recurring habit with its own streak.
type Activity struct {
	Base
	UserID          string               `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string               `gorm:"not null" json:"name"`
	Frequency       ActivityFrequency    `gorm:"size:10;not null" json:"frequency"`
	Streak          int                  `gorm:"not null;default:0" json:"streak"`
	LastCompletedAt *time.Time           `json:"last_completed_at,omitempty"`
	Notes           string               `json:"notes"`
	Icon            string               `json:"icon"`
	Completions     []ActivityCompletion `gorm:"foreignKey:ActivityID" json:"completions,omitempty"`
}

// ActivityCompletion records one completion of an activity.
type ActivityCompletion struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID  string    `gorm:"type:uuid;not null;index" json:"activity_id"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
	Note        string    `json:"note,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (c *ActivityCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New()
	}
	return nil
}
