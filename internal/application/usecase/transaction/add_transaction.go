// Package transaction contains transaction-related use cases. Every mutation
// follows the same protocol: read the current summary, apply the movement's
// delta, and commit the record write and the summary write as one atomic
// multi-path update so no observer sees one without the other.
package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// AddTransactionInput represents the input for recording a transaction.
type AddTransactionInput struct {
	Session     *session.Session
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  string
}

// AddTransactionOutput represents the output of recording a transaction.
type AddTransactionOutput struct {
	Transaction *entity.Transaction
	Summary     entity.Summary
}

// AddTransactionUseCase handles transaction creation logic.
type AddTransactionUseCase struct {
	store adapter.RemoteStore
}

// NewAddTransactionUseCase creates a new AddTransactionUseCase instance.
func NewAddTransactionUseCase(store adapter.RemoteStore) *AddTransactionUseCase {
	return &AddTransactionUseCase{store: store}
}

// Execute records the transaction and folds its delta into the summary.
func (uc *AddTransactionUseCase) Execute(ctx context.Context, input AddTransactionInput) (*AddTransactionOutput, error) {
	if err := validateTransactionFields(input.Session, input.Description, input.Amount, input.Type, input.CategoryID); err != nil {
		return nil, err
	}

	userID := input.Session.UserID()
	tx := entity.NewTransaction(input.Date, input.Description, input.Amount, input.Type, input.CategoryID)

	summary, err := session.FetchSummary(ctx, uc.store, userID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to read summary", err)
	}
	summary = calc.ApplyTransactionDelta(summary, tx, +1)

	if err := uc.store.Update(ctx, map[string]any{
		session.TransactionPath(userID, tx.ID): tx,
		session.SummaryPath(userID):            summary,
	}); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to commit transaction", err)
	}

	return &AddTransactionOutput{Transaction: tx, Summary: summary}, nil
}

// validateTransactionFields enforces the shared invariants of add and update.
func validateTransactionFields(sess *session.Session, description string, amount decimal.Decimal, transactionType entity.TransactionType, categoryID string) error {
	if description == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyDescription,
			"description cannot be empty",
			domainerror.ErrEmptyTransactionDescription,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			"description must not exceed 255 characters",
			domainerror.ErrDescriptionTooLong,
		)
	}
	if amount.Sign() <= 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !transactionType.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if _, ok := sess.CategoryByID(categoryID); !ok {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category does not exist",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	return nil
}
