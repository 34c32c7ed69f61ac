package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for recording a transaction.
type CreateTransactionRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	CategoryID  string          `json:"category_id" binding:"required"`
}

// UpdateTransactionRequest represents the request body for rewriting a transaction.
type UpdateTransactionRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	CategoryID  string          `json:"category_id" binding:"required"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// MutationResponse pairs a written transaction with the summary the same
// atomic update produced.
type MutationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Summary     SummaryResponse     `json:"summary"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.Transaction, categoryName string) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		Date:         tx.Date,
		Description:  tx.Description,
		Amount:       tx.Amount,
		Type:         string(tx.Type),
		CategoryID:   tx.CategoryID,
		CategoryName: categoryName,
	}
}
