package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"lifetrack/internal/classifier"
	"lifetrack/internal/currency"
	"lifetrack/internal/dashboard"
	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/models"
	"lifetrack/internal/pagination"
)

var transactionSortColumns = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"category":   "category",
	"created_at": "created_at",
}

// transactionService handles transaction-related business logic.
type transactionService struct {
	db        *gorm.DB
	suggester CategorySuggester
	now       func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, suggester CategorySuggester) TransactionServicer {
	return &transactionService{
		db:        db,
		suggester: suggester,
		now:       time.Now,
	}
}

// CreateTransaction records an income or expense. A category suggestion is
// requested when no category is given or the transaction is an expense, and
// creating an expense advances the user's expense streak.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, input CreateTransactionInput) (*models.Transaction, error) {
	if err := validateTransactionType(input.Type); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	user, err := loadUserForUpdate(s.db, userID)
	if err != nil {
		return nil, err
	}

	code := input.Currency
	if strings.TrimSpace(code) == "" {
		code = user.Preferences.Currency
	}
	code, err = resolveCurrency(code)
	if err != nil {
		return nil, err
	}

	// Default date to now if not provided
	date := s.now()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}

	category := strings.TrimSpace(input.Category)
	transaction := &models.Transaction{
		UserID:      userID,
		Type:        input.Type,
		Amount:      input.Amount,
		Currency:    code,
		Description: strings.TrimSpace(input.Description),
		Notes:       input.Notes,
		Date:        date,
		Tags:        normalizeTags(input.Tags),
		Source:      input.Source,
	}
	if transaction.Source == "" {
		transaction.Source = models.TransactionSourceManual
	}

	if category == "" || input.Type == models.TransactionTypeExpense {
		suggestion := s.suggester.Predict(ctx, transaction.Description, string(input.Type))
		transaction.AISuggestedCategory = suggestion.Category
		confidence := suggestion.Confidence
		transaction.AIConfidence = &confidence
		if category == "" {
			category = suggestion.Category
		}
	}
	if category == "" {
		category = classifier.DefaultCategory
	}
	transaction.Category = category

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.Type == models.TransactionTypeExpense {
			return advanceUserStreak(tx, userID, models.StreakExpenses, transaction.Date)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's transactions.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order(page.OrderClause(transactionSortColumns, "date DESC")).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	return findTransaction(s.db, userID, transactionID)
}

func findTransaction(db *gorm.DB, userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update. When the description changes
// without an explicit category, the category is re-suggested and replaces the
// current one only if that was empty or the previous suggestion.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, input UpdateTransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if err := validateTransactionType(*input.Type); err != nil {
			return nil, err
		}
		transaction.Type = *input.Type
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		transaction.Amount = *input.Amount
	}
	if input.Currency != nil {
		code, err := resolveCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		transaction.Currency = code
	}
	if input.Notes != nil {
		transaction.Notes = *input.Notes
	}
	if input.Date != nil && !input.Date.IsZero() {
		transaction.Date = *input.Date
	}
	if input.Tags != nil {
		transaction.Tags = normalizeTags(input.Tags)
	}

	explicitCategory := input.Category != nil && strings.TrimSpace(*input.Category) != ""
	if explicitCategory {
		transaction.Category = strings.TrimSpace(*input.Category)
	}

	if input.Description != nil {
		transaction.Description = strings.TrimSpace(*input.Description)
		if transaction.Description != "" && !explicitCategory {
			suggestion := s.suggester.Predict(ctx, transaction.Description, string(transaction.Type))
			if transaction.Category == "" || transaction.Category == transaction.AISuggestedCategory {
				transaction.Category = suggestion.Category
			}
			transaction.AISuggestedCategory = suggestion.Category
			confidence := suggestion.Confidence
			transaction.AIConfidence = &confidence
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction owned by the user.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := findTransaction(tx, userID, transactionID)
		if err != nil {
			return err
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetMonthlySummary totals the user's transactions per type and category for
// one calendar month, in the user's preferred currency.
func (s *transactionService) GetMonthlySummary(userID string, year, month int) (*MonthlySummary, error) {
	now := s.now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be 1-12 and year must be positive")
	}

	user, err := loadUserForUpdate(s.db, userID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := dashboard.EndOfMonth(start)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	base := currency.Lookup(user.Preferences.Currency).Code
	return &MonthlySummary{
		Year:       year,
		Month:      month,
		Currency:   base,
		Categories: dashboard.MonthlySummary(toDashboardTransactions(transactions), base, year, month, time.UTC),
	}, nil
}

// ExportTransactions returns all of the user's transactions, newest first.
func (s *transactionService) ExportTransactions(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func validateTransactionType(t models.TransactionType) error {
	switch t {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return nil
	}
	return apperrors.ErrInvalidTransactionType
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a non-negative number")
	}
	return nil
}

func resolveCurrency(code string) (string, error) {
	code = currency.Normalize(code)
	if !currency.IsSupported(code) {
		return "", apperrors.ErrUnsupportedCurrency
	}
	return code, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func toDashboardTransactions(txs []models.Transaction) []dashboard.Transaction {
	out := make([]dashboard.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, dashboard.Transaction{
			Type:     string(t.Type),
			Amount:   t.Amount,
			Currency: t.Currency,
			Category: t.Category,
			Date:     t.Date,
		})
	}
	return out
}
