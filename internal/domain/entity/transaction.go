// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is a known value.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a single dated money movement tied to one category.
//
// The ID is the record key in the document store; it is not duplicated inside
// the stored value and is reconstituted on read.
type Transaction struct {
	ID          string          `json:"-"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	CategoryID  string          `json:"categoryId"`
}

// NewTransaction creates a new Transaction entity with a fresh record id.
func NewTransaction(date time.Time, description string, amount decimal.Decimal, transactionType TransactionType, categoryID string) *Transaction {
	return &Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
	}
}
