package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lifetrack/internal/classifier"
	"lifetrack/internal/models"
	"lifetrack/internal/pagination"
	"lifetrack/internal/testutil"
)

func newTestTransactionService(db *gorm.DB, now time.Time) *transactionService {
	return &transactionService{
		db:        db,
		suggester: classifier.New(classifier.Standard, nil, 0, zap.NewNop().Sugar()),
		now:       func() time.Time { return now },
	}
}

func reloadUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	var u models.User
	if err := db.Where("id = ?", id).First(&u).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &u
}

func TestCreateTransaction(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("suggests_missing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{
			Type:        models.TransactionTypeExpense,
			Amount:      12.5,
			Description: "Uber ride home",
		})
		testutil.AssertNoError(t, err)

		if tx.Category != "Transportation" {
			t.Errorf("expected Transportation, got %s", tx.Category)
		}
		if tx.AISuggestedCategory != "Transportation" {
			t.Errorf("expected suggestion stored, got %q", tx.AISuggestedCategory)
		}
		if tx.AIConfidence == nil || *tx.AIConfidence != 0.7 {
			t.Errorf("expected confidence 0.7, got %v", tx.AIConfidence)
		}
		if tx.Currency != "USD" {
			t.Errorf("expected user currency USD, got %s", tx.Currency)
		}
		if tx.Source != models.TransactionSourceManual {
			t.Errorf("expected manual source, got %s", tx.Source)
		}
		if !tx.Date.Equal(now) {
			t.Errorf("expected date defaulted to now, got %s", tx.Date)
		}
	})

	t.Run("explicit_income_category_skips_suggestion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{
			Type:        models.TransactionTypeIncome,
			Amount:      1000,
			Category:    "Bonus",
			Description: "Monthly salary",
		})
		testutil.AssertNoError(t, err)

		if tx.Category != "Bonus" {
			t.Errorf("expected Bonus, got %s", tx.Category)
		}
		if tx.AIConfidence != nil || tx.AISuggestedCategory != "" {
			t.Errorf("expected no suggestion, got %q/%v", tx.AISuggestedCategory, tx.AIConfidence)
		}
	})

	t.Run("explicit_expense_category_keeps_suggestion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{
			Type:        models.TransactionTypeExpense,
			Amount:      40,
			Category:    "Work",
			Description: "Team lunch",
		})
		testutil.AssertNoError(t, err)

		if tx.Category != "Work" {
			t.Errorf("expected Work, got %s", tx.Category)
		}
		if tx.AISuggestedCategory != "Food & Dining" {
			t.Errorf("expected Food & Dining suggestion, got %q", tx.AISuggestedCategory)
		}
	})

	t.Run("unmatched_description_falls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{
			Type:   models.TransactionTypeExpense,
			Amount: 3,
		})
		testutil.AssertNoError(t, err)
		if tx.Category != classifier.DefaultCategory {
			t.Errorf("expected %s, got %s", classifier.DefaultCategory, tx.Category)
		}
	})

	t.Run("currency_handling", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)
		if err := db.Model(user).Update("pref_currency", "EUR").Error; err != nil {
			t.Fatal(err)
		}

		tx, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: models.TransactionTypeIncome, Amount: 5, Category: "Gift"})
		testutil.AssertNoError(t, err)
		if tx.Currency != "EUR" {
			t.Errorf("expected preferred EUR, got %s", tx.Currency)
		}

		tx, err = svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: models.TransactionTypeIncome, Amount: 5, Category: "Gift", Currency: " gbp "})
		testutil.AssertNoError(t, err)
		if tx.Currency != "GBP" {
			t.Errorf("expected GBP, got %s", tx.Currency)
		}

		_, err = svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: models.TransactionTypeIncome, Amount: 5, Currency: "XYZ"})
		testutil.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: "transfer", Amount: 5})
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: models.TransactionTypeExpense, Amount: -1})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no rows written, got %d", count)
		}
	})

	t.Run("expense_streak_follows_transaction_dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		day := func(d, h int) *time.Time {
			v := time.Date(2024, 5, d, h, 0, 0, 0, time.UTC)
			return &v
		}
		steps := []struct {
			date *time.Time
			want int
		}{
			{day(10, 9), 1},
			{day(10, 18), 1},
			{day(11, 8), 2},
			{day(12, 23), 3},
			{day(15, 7), 1},
		}
		for i, step := range steps {
			_, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{
				Type: models.TransactionTypeExpense, Amount: 1, Category: "Misc", Date: step.date,
			})
			testutil.AssertNoError(t, err)
			if got := reloadUser(t, db, user.ID).Streaks.Expenses; got != step.want {
				t.Errorf("step %d: expected streak %d, got %d", i, step.want, got)
			}
		}
	})

	t.Run("income_does_not_touch_streak", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: models.TransactionTypeIncome, Amount: 10, Category: "Salary"})
		testutil.AssertNoError(t, err)

		u := reloadUser(t, db, user.ID)
		if u.Streaks.Expenses != 0 || u.LastExpenseLoggedAt != nil {
			t.Errorf("expected untouched expense streak, got %d/%v", u.Streaks.Expenses, u.LastExpenseLoggedAt)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("resuggests_when_category_was_suggested", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: models.TransactionTypeExpense, Amount: 9, Description: "Coffee"})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateTransaction(ctx, user.ID, tx.ID, UpdateTransactionInput{Description: strPtr("Netflix plan")})
		testutil.AssertNoError(t, err)

		if updated.Category != "Entertainment" {
			t.Errorf("expected Entertainment, got %s", updated.Category)
		}
		if updated.AISuggestedCategory != "Entertainment" {
			t.Errorf("expected new suggestion, got %s", updated.AISuggestedCategory)
		}
	})

	t.Run("keeps_manual_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: models.TransactionTypeExpense, Amount: 9, Category: "Treats", Description: "Coffee"})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateTransaction(ctx, user.ID, tx.ID, UpdateTransactionInput{Description: strPtr("Netflix plan")})
		testutil.AssertNoError(t, err)

		if updated.Category != "Treats" {
			t.Errorf("expected manual category kept, got %s", updated.Category)
		}
		if updated.AISuggestedCategory != "Entertainment" {
			t.Errorf("expected suggestion refreshed, got %s", updated.AISuggestedCategory)
		}
	})

	t.Run("explicit_category_wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(ctx, user.ID, CreateTransactionInput{Type: models.TransactionTypeExpense, Amount: 9, Description: "Coffee"})
		testutil.AssertNoError(t, err)

		amount := 11.0
		updated, err := svc.UpdateTransaction(ctx, user.ID, tx.ID, UpdateTransactionInput{
			Description: strPtr("Netflix plan"),
			Category:    strPtr("Fun"),
			Amount:      &amount,
		})
		testutil.AssertNoError(t, err)

		if updated.Category != "Fun" || updated.Amount != 11 {
			t.Errorf("unexpected result: %s %v", updated.Category, updated.Amount)
		}
		if updated.AISuggestedCategory != "Food & Dining" {
			t.Errorf("expected suggestion untouched, got %s", updated.AISuggestedCategory)
		}
	})

	t.Run("unsupported_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 5)

		_, err := svc.UpdateTransaction(ctx, user.ID, tx.ID, UpdateTransactionInput{Currency: strPtr("ABC")})
		testutil.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
	})

	t.Run("other_users_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, now)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, models.TransactionTypeExpense, 5)

		_, err := svc.UpdateTransaction(ctx, other.ID, tx.ID, UpdateTransactionInput{Notes: strPtr("mine now")})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestGetUserTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestTransactionService(db, time.Now())
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, float64(10*(i+1)), "USD", "Food & Dining", base.AddDate(0, 0, i))
	}
	testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeIncome, 500, "USD", "Salary", base.AddDate(0, 0, 2))
	testutil.CreateTestTransactionAt(t, db, other.ID, models.TransactionTypeExpense, 99, "USD", "Food & Dining", base)

	t.Run("newest_first", func(t *testing.T) {
		res, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{Page: 1, PageSize: 10}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if res.TotalItems != 6 {
			t.Fatalf("expected 6 items, got %d", res.TotalItems)
		}
		for i := 1; i < len(res.Data); i++ {
			if res.Data[i].Date.After(res.Data[i-1].Date) {
				t.Fatalf("not ordered by date desc at %d", i)
			}
		}
	})

	t.Run("paginates", func(t *testing.T) {
		res, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{Page: 2, PageSize: 4}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(res.Data) != 2 || res.TotalPages != 2 {
			t.Errorf("expected 2 items on page 2 of 2, got %d of %d", len(res.Data), res.TotalPages)
		}
	})

	t.Run("filters", func(t *testing.T) {
		txType := models.TransactionTypeExpense
		from := base.AddDate(0, 0, 1)
		to := base.AddDate(0, 0, 3)
		res, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &txType, FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)
		if res.TotalItems != 3 {
			t.Errorf("expected 3 filtered items, got %d", res.TotalItems)
		}

		category := "Salary"
		res, err = svc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Category: &category})
		testutil.AssertNoError(t, err)
		if res.TotalItems != 1 || res.Data[0].Amount != 500 {
			t.Errorf("expected the salary row, got %+v", res.Data)
		}
	})

	t.Run("sort_by_amount", func(t *testing.T) {
		res, err := svc.GetUserTransactions(user.ID, pagination.PageRequest{Sort: "amount"}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if res.Data[0].Amount != 10 {
			t.Errorf("expected smallest amount first, got %v", res.Data[0].Amount)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("soft_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, time.Now())
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 5)

		testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))

		_, err := svc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		var count int64
		db.Unscoped().Model(&models.Transaction{}).Where("id = ?", tx.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected soft-deleted row to remain, got %d", count)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, time.Now())
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteTransaction(user.ID, "01890a5d-ac96-774b-bcce-b302099a8057")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestGetMonthlySummary(t *testing.T) {
	t.Run("groups_by_type_and_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
		user := testutil.CreateTestUser(t, db)

		march := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeIncome, 1000, "USD", "Salary", march)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 30, "USD", "Food & Dining", march)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 20, "USD", "Food & Dining", march)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 80, "USD", "Utilities", march)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 999, "USD", "Utilities", march.AddDate(0, 1, 0))

		summary, err := svc.GetMonthlySummary(user.ID, 2024, 3)
		testutil.AssertNoError(t, err)

		if summary.Currency != "USD" || len(summary.Categories) != 3 {
			t.Fatalf("unexpected summary: %+v", summary)
		}
		first := summary.Categories[0]
		if first.Type != "income" || first.Total != 1000 {
			t.Errorf("expected income first, got %+v", first)
		}
		food := summary.Categories[2]
		if food.Category != "Food & Dining" || food.Total != 50 || food.Count != 2 {
			t.Errorf("unexpected food row: %+v", food)
		}
	})

	t.Run("defaults_to_current_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.GetMonthlySummary(user.ID, 0, 0)
		testutil.AssertNoError(t, err)
		if summary.Year != 2024 || summary.Month != 6 {
			t.Errorf("expected 2024-06, got %d-%d", summary.Year, summary.Month)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestTransactionService(db, time.Now())
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetMonthlySummary(user.ID, 2024, 13)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestExportTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestTransactionService(db, time.Now())
	user := testutil.CreateTestUser(t, db)

	old := testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 1, "USD", "A", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	recent := testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 2, "USD", "B", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	rows, err := svc.ExportTransactions(user.ID)
	testutil.AssertNoError(t, err)
	if len(rows) != 2 || rows[0].ID != recent.ID || rows[1].ID != old.ID {
		t.Errorf("expected newest first, got %+v", rows)
	}
}
