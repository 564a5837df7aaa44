package services

import (
	"testing"
	"time"

	"lifetrack/internal/models"
	"lifetrack/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, CreateGoalInput{Title: " Save for bike ", TargetValue: 500})
		testutil.AssertNoError(t, err)

		if goal.Title != "Save for bike" {
			t.Errorf("expected trimmed title, got %q", goal.Title)
		}
		if goal.Frequency != models.GoalFrequencyMonthly {
			t.Errorf("expected monthly default, got %s", goal.Frequency)
		}
		if goal.Category != "General" {
			t.Errorf("expected General default, got %s", goal.Category)
		}
		if goal.IsCompleted {
			t.Error("expected incomplete goal")
		}
	})

	t.Run("already_complete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, CreateGoalInput{Title: "Done", TargetValue: 10, CurrentValue: 12})
		testutil.AssertNoError(t, err)
		if !goal.IsCompleted {
			t.Error("expected completed goal")
		}
	})

	t.Run("zero_target_is_complete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, CreateGoalInput{Title: "Open account", TargetValue: 0})
		testutil.AssertNoError(t, err)
		if !goal.IsCompleted {
			t.Error("expected a zero-target goal to be completed")
		}
	})

	t.Run("validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		tests := []struct {
			name  string
			input CreateGoalInput
		}{
			{"missing_title", CreateGoalInput{TargetValue: 1}},
			{"negative_target", CreateGoalInput{Title: "x", TargetValue: -1}},
			{"negative_current", CreateGoalInput{Title: "x", TargetValue: 1, CurrentValue: -2}},
			{"bad_frequency", CreateGoalInput{Title: "x", TargetValue: 1, Frequency: "yearly"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.CreateGoal(user.ID, tt.input)
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("recomputes_completion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100, 90)

		target := 80.0
		updated, err := svc.UpdateGoal(user.ID, goal.ID, UpdateGoalInput{TargetValue: &target})
		testutil.AssertNoError(t, err)
		if !updated.IsCompleted {
			t.Error("expected goal to complete after lowering target")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, owner.ID, 100, 0)

		title := "stolen"
		_, err := svc.UpdateGoal(other.ID, goal.ID, UpdateGoalInput{Title: &title})
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestDeleteGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.ID, 100, 0)

	testutil.AssertNoError(t, svc.DeleteGoal(user.ID, goal.ID))

	goals, err := svc.GetUserGoals(user.ID)
	testutil.AssertNoError(t, err)
	if len(goals) != 0 {
		t.Errorf("expected no goals, got %d", len(goals))
	}

	err = svc.DeleteGoal(user.ID, goal.ID)
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestRecordProgress(t *testing.T) {
	t.Run("appends_history_and_completes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		clock := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
		svc := &goalService{db: db, now: func() time.Time { return clock }}
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100, 0)

		updated, err := svc.RecordProgress(user.ID, goal.ID, 44, "first")
		testutil.AssertNoError(t, err)
		if updated.CurrentValue != 44 || updated.IsCompleted {
			t.Errorf("unexpected goal after first update: %+v", updated)
		}

		clock = clock.AddDate(0, 0, 1)
		updated, err = svc.RecordProgress(user.ID, goal.ID, 100, "")
		testutil.AssertNoError(t, err)
		if !updated.IsCompleted {
			t.Error("expected completed goal")
		}
		if len(updated.History) != 2 || updated.History[0].Value != 44 || updated.History[1].Value != 100 {
			t.Errorf("unexpected history: %+v", updated.History)
		}

		u := reloadUser(t, db, user.ID)
		if u.Streaks.Goals != 2 {
			t.Errorf("expected goal streak 2, got %d", u.Streaks.Goals)
		}
	})

	t.Run("negative_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100, 0)

		_, err := svc.RecordProgress(user.ID, goal.ID, -5, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.RecordProgress(user.ID, "01890a5d-ac96-774b-bcce-b302099a8057", 5, "")
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}
