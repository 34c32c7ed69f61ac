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

// UpdateTransactionInput represents the input for rewriting a transaction.
type UpdateTransactionInput struct {
	Session     *session.Session
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  string
}

// UpdateTransactionOutput represents the output of rewriting a transaction.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
	Summary     entity.Summary
}

// UpdateTransactionUseCase handles transaction replacement logic.
type UpdateTransactionUseCase struct {
	store adapter.RemoteStore
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(store adapter.RemoteStore) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{store: store}
}

// Execute replaces the stored transaction. The summary delta is the reversal
// of the old movement plus the new one, folded into a single read-modify-write
// so the summary and the record change together.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if err := validateTransactionFields(input.Session, input.Description, input.Amount, input.Type, input.CategoryID); err != nil {
		return nil, err
	}

	userID := input.Session.UserID()
	existing, err := session.FetchTransaction(ctx, uc.store, userID, input.ID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to read transaction", err)
	}
	if existing == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	updated := &entity.Transaction{
		ID:          input.ID,
		Date:        input.Date,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
	}

	summary, err := session.FetchSummary(ctx, uc.store, userID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to read summary", err)
	}
	summary = calc.ApplyTransactionDelta(summary, existing, -1)
	summary = calc.ApplyTransactionDelta(summary, updated, +1)

	if err := uc.store.Update(ctx, map[string]any{
		session.TransactionPath(userID, updated.ID): updated,
		session.SummaryPath(userID):                 summary,
	}); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to commit transaction", err)
	}

	return &UpdateTransactionOutput{Transaction: updated, Summary: summary}, nil
}
