package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionSourceManual marks transactions entered by the user.
const TransactionSourceManual = "manual"

// Transaction represents an income or expense entry owned by one user.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"size:10;not null" json:"type"`
	Amount      float64         `gorm:"type:numeric(14,2);not null" json:"amount"`
	Currency    string          `gorm:"size:3;not null" json:"currency"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Tags        []string        `gorm:"type:text;serializer:json" json:"tags"`
	Source      string          `gorm:"size:20" json:"source"`

	// Category suggestion recorded when the transaction was created or re-described.
	AISuggestedCategory string   `gorm:"column:ai_suggested_category" json:"ai_suggested_category,omitempty"`
	AIConfidence        *float64 `gorm:"column:ai_confidence" json:"ai_confidence,omitempty"`
}
