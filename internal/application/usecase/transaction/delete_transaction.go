package transaction

import (
	"context"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for removing a transaction.
type DeleteTransactionInput struct {
	Session *session.Session
	ID      string
}

// DeleteTransactionOutput represents the output of removing a transaction.
type DeleteTransactionOutput struct {
	Summary entity.Summary
}

// DeleteTransactionUseCase handles transaction removal logic.
type DeleteTransactionUseCase struct {
	store adapter.RemoteStore
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(store adapter.RemoteStore) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{store: store}
}

// Execute removes the transaction and reverses its delta from the summary in
// one atomic update. The record tombstone is a nil value in the multi-path
// write, matching how the store expresses deletes.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
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

	summary, err := session.FetchSummary(ctx, uc.store, userID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to read summary", err)
	}
	summary = calc.ApplyTransactionDelta(summary, existing, -1)

	if err := uc.store.Update(ctx, map[string]any{
		session.TransactionPath(userID, input.ID): nil,
		session.SummaryPath(userID):               summary,
	}); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to commit removal", err)
	}

	return &DeleteTransactionOutput{Summary: summary}, nil
}
