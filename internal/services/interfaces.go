package services

import (
	"context"
	"time"

	"lifetrack/internal/classifier"
	"lifetrack/internal/dashboard"
	"lifetrack/internal/models"
	"lifetrack/internal/notify"
	"lifetrack/internal/pagination"
)

// PreferencesUpdate carries the preference fields to change. Nil fields are left as-is.
type PreferencesUpdate struct {
	Theme         *models.Theme
	Currency      *string
	DailyReminder *bool
	ReminderTime  *string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	UpdatePreferences(userID string, update PreferencesUpdate) (*models.User, error)
}

// CreateTransactionInput holds the fields accepted when creating a transaction.
type CreateTransactionInput struct {
	Type        models.TransactionType
	Amount      float64
	Currency    string
	Category    string
	Description string
	Notes       string
	Date        *time.Time
	Tags        []string
	Source      string
}

// UpdateTransactionInput holds the fields that may change on a transaction.
// Nil fields are left as-is.
type UpdateTransactionInput struct {
	Type        *models.TransactionType
	Amount      *float64
	Currency    *string
	Category    *string
	Description *string
	Notes       *string
	Date        *time.Time
	Tags        []string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
}

// MonthlySummary is the per-category breakdown of one calendar month.
type MonthlySummary struct {
	Year       int                         `json:"year"`
	Month      int                         `json:"month"`
	Currency   string                      `json:"currency"`
	Categories []dashboard.CategorySummary `json:"categories"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID string, input CreateTransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, input UpdateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	GetMonthlySummary(userID string, year, month int) (*MonthlySummary, error)
	ExportTransactions(userID string) ([]models.Transaction, error)
}

// CreateGoalInput holds the fields accepted when creating a goal.
type CreateGoalInput struct {
	Title        string
	Description  string
	TargetValue  float64
	CurrentValue float64
	Frequency    models.GoalFrequency
	Deadline     *time.Time
	Category     string
}

// UpdateGoalInput holds the goal fields that may change. Nil fields are left as-is.
type UpdateGoalInput struct {
	Title        *string
	Description  *string
	TargetValue  *float64
	CurrentValue *float64
	Frequency    *models.GoalFrequency
	Deadline     *time.Time
	Category     *string
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID string, input CreateGoalInput) (*models.Goal, error)
	GetUserGoals(userID string) ([]models.Goal, error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID string, input UpdateGoalInput) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
	RecordProgress(userID, goalID string, value float64, note string) (*models.Goal, error)
}

// CreateActivityInput holds the fields accepted when creating an activity.
type CreateActivityInput struct {
	Name      string
	Frequency models.ActivityFrequency
	Notes     string
	Icon      string
}

// UpdateActivityInput holds the activity fields that may change. Nil fields are left as-is.
type UpdateActivityInput struct {
	Name      *string
	Frequency *models.ActivityFrequency
	Notes     *string
	Icon      *string
}

// ActivityServicer defines the contract for activity-related business logic.
type ActivityServicer interface {
	CreateActivity(userID string, input CreateActivityInput) (*models.Activity, error)
	GetUserActivities(userID string) ([]models.Activity, error)
	GetActivityByID(userID, activityID string) (*models.Activity, error)
	UpdateActivity(userID, activityID string, input UpdateActivityInput) (*models.Activity, error)
	DeleteActivity(userID, activityID string) error
	CompleteActivity(userID, activityID, note string) (*models.Activity, error)
}

// Dashboard is the aggregated dashboard plus the user's own streak counters.
type Dashboard struct {
	dashboard.Metrics
	Streaks models.Streaks `json:"streaks"`
}

// DashboardServicer defines the contract for dashboard aggregation.
type DashboardServicer interface {
	GetDashboard(userID string) (*Dashboard, error)
}

// NotificationServicer defines the contract for deriving reminders.
type NotificationServicer interface {
	GetNotifications(userID string) ([]notify.Notification, error)
}

// CategorySuggester predicts a category for a description. It never fails.
type CategorySuggester interface {
	Predict(ctx context.Context, description, txType string) classifier.Result
	Labels(txType string) []string
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
