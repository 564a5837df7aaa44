package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"lifetrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email and default preferences.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:        "Test User",
		Email:       email,
		Password:    string(hash),
		IsActive:    true,
		Preferences: models.DefaultPreferences(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a USD transaction dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, userID, txType, amount, "USD", "General", time.Now())
}

// CreateTestTransactionAt creates a transaction with full control over its fields.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64, currencyCode, category string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Currency:    currencyCode,
		Category:    category,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Date:        date,
		Tags:        []string{},
		Source:      models.TransactionSourceManual,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal creates a monthly goal with the given target and current values.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target, current float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Title:        fmt.Sprintf("Test Goal %d", nextID()),
		TargetValue:  target,
		CurrentValue: current,
		Frequency:    models.GoalFrequencyMonthly,
		Category:     "General",
	}
	goal.RefreshCompletion()
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestActivity creates an activity with no completions.
func CreateTestActivity(t *testing.T, db *gorm.DB, userID string, frequency models.ActivityFrequency) *models.Activity {
	t.Helper()

	activity := &models.Activity{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Activity %d", nextID()),
		Frequency: frequency,
	}
	if err := db.Create(activity).Error; err != nil {
		t.Fatalf("failed to create test activity: %v", err)
	}
	return activity
}
