package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lifetrack/internal/models"
	"lifetrack/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice", "  Alice@Example.com ", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected user ID to be set")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected normalized email, got %s", user.Email)
		}
		if !user.IsActive {
			t.Error("expected user to be active")
		}
		if user.Preferences != models.DefaultPreferences() {
			t.Errorf("expected default preferences, got %+v", user.Preferences)
		}
		if user.Streaks != (models.Streaks{}) {
			t.Errorf("expected zero streaks, got %+v", user.Streaks)
		}
	})

	t.Run("password_is_hashed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Bob", "bob@example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.Password == "password123" {
			t.Fatal("password stored in plain text")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
			t.Errorf("stored hash does not match: %v", err)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("Dup", "dup@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Dup", "DUP@example.com", "password456")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "x@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("X", "", "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("X", "x@example.com", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUserWithEmail(t, db, "find@example.com")

		user, err := svc.GetUserByEmail("FIND@example.com")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected ID %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		user, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)
		if user.Email != created.Email {
			t.Errorf("expected email %s, got %s", created.Email, user.Email)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByID("01890a5d-ac96-774b-bcce-b302099a8057")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("success_records_login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		svc := &userService{db: db, now: func() time.Time { return fixed }}
		created := testutil.CreateTestUser(t, db)

		user, err := svc.AttemptLogin(created.Email, testutil.TestPassword)
		testutil.AssertNoError(t, err)
		if user.LastLoginAt == nil || !user.LastLoginAt.Equal(fixed) {
			t.Errorf("expected last login %s, got %v", fixed, user.LastLoginAt)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		_, err := svc.AttemptLogin(created.Email, "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.AttemptLogin("ghost@example.com", testutil.TestPassword)
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUpdatePreferences(t *testing.T) {
	t.Run("partial_merge", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		dark := models.ThemeDark
		code := "eur"
		user, err := svc.UpdatePreferences(created.ID, PreferencesUpdate{Theme: &dark, Currency: &code})
		testutil.AssertNoError(t, err)

		if user.Preferences.Theme != models.ThemeDark {
			t.Errorf("expected dark theme, got %s", user.Preferences.Theme)
		}
		if user.Preferences.Currency != "EUR" {
			t.Errorf("expected EUR, got %s", user.Preferences.Currency)
		}
		if !user.Preferences.DailyReminder || user.Preferences.ReminderTime != "20:00" {
			t.Errorf("untouched fields changed: %+v", user.Preferences)
		}
	})

	t.Run("unsupported_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		created := testutil.CreateTestUser(t, db)

		code := "XYZ"
		_, err := svc.UpdatePreferences(created.ID, PreferencesUpdate{Currency: &code})
		testutil.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		off := false
		_, err := svc.UpdatePreferences("01890a5d-ac96-774b-bcce-b302099a8057", PreferencesUpdate{DailyReminder: &off})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
