package models

import (
	"time"

	"lifetrack/internal/streak"
)

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences is the user's preference bag.
type Preferences struct {
	Theme         Theme  `gorm:"size:10" json:"theme"`
	Currency      string `gorm:"size:3" json:"currency"`
	DailyReminder bool   `json:"daily_reminder"`
	ReminderTime  string `gorm:"size:5" json:"reminder_time"`
}

// DefaultPreferences returns the preferences given to new users.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         ThemeSystem,
		Currency:      "USD",
		DailyReminder: true,
		ReminderTime:  "20:00",
	}
}

// Streaks holds the three user-level streak counters.
type Streaks struct {
	Expenses   int `json:"expenses"`
	Goals      int `json:"goals"`
	Activities int `json:"activities"`
}

// StreakKind selects one of the user-level streaks.
type StreakKind int

const (
	StreakExpenses StreakKind = iota
	StreakGoals
	StreakActivities
)

// User represents the user model in the database
type User struct {
	Base
	Name        string      `gorm:"not null" json:"name"`
	Email       string      `gorm:"uniqueIndex;not null" json:"email"`
	Password    string      `gorm:"not null" json:"-"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	Streaks     Streaks     `gorm:"embedded;embeddedPrefix:streak_" json:"streaks"`

	LastExpenseLoggedAt     *time.Time `json:"last_expense_logged_at,omitempty"`
	LastGoalUpdatedAt       *time.Time `json:"last_goal_updated_at,omitempty"`
	LastActivityCompletedAt *time.Time `json:"last_activity_completed_at,omitempty"`
}

// StreakCounter returns the counter and its timestamp for kind.
func (u *User) StreakCounter(kind StreakKind) streak.Counter {
	switch kind {
	case StreakGoals:
		return streak.Counter{Count: u.Streaks.Goals, LastAt: u.LastGoalUpdatedAt}
	case StreakActivities:
		return streak.Counter{Count: u.Streaks.Activities, LastAt: u.LastActivityCompletedAt}
	default:
		return streak.Counter{Count: u.Streaks.Expenses, LastAt: u.LastExpenseLoggedAt}
	}
}

// SetStreakCounter stores c back into the fields for kind.
func (u *User) SetStreakCounter(kind StreakKind, c streak.Counter) {
	switch kind {
	case StreakGoals:
		u.Streaks.Goals, u.LastGoalUpdatedAt = c.Count, c.LastAt
	case StreakActivities:
		u.Streaks.Activities, u.LastActivityCompletedAt = c.Count, c.LastAt
	default:
		u.Streaks.Expenses, u.LastExpenseLoggedAt = c.Count, c.LastAt
	}
}
