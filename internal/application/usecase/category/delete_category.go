package category

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category removal.
type DeleteCategoryInput struct {
	Session *session.Session
	ID      string
}

// DeleteCategoryOutput reports what the cascade removed.
type DeleteCategoryOutput struct {
	DeletedTransactions int
	DeletedBudgetGoals  int
	Summary             entity.Summary
}

// DeleteCategoryUseCase handles category removal and its cascade.
type DeleteCategoryUseCase struct {
	store adapter.RemoteStore
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(store adapter.RemoteStore) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{store: store}
}

// Execute removes the category together with every transaction and budget
// goal that references it. The referencing records are found by remote query,
// not the local mirror, so a stale mirror cannot leave orphans. Summary
// reversal for the removed transactions lands in the same multi-path update
// as the tombstones.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if _, ok := input.Session.CategoryByID(input.ID); !ok {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	userID := input.Session.UserID()

	txRecords, err := uc.store.QueryEqual(ctx, session.TransactionsPath(userID), "categoryId", input.ID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to query transactions", err)
	}
	goalRecords, err := uc.store.QueryEqual(ctx, session.BudgetGoalsPath(userID), "categoryId", input.ID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to query budget goals", err)
	}

	summary, err := session.FetchSummary(ctx, uc.store, userID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to read summary", err)
	}

	values := map[string]any{
		session.CategoryPath(userID, input.ID): nil,
	}
	for id, raw := range txRecords {
		var tx entity.Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, fmt.Sprintf("malformed transaction %s", id), err)
		}
		summary = calc.ApplyTransactionDelta(summary, &tx, -1)
		values[session.TransactionPath(userID, id)] = nil
	}
	for id := range goalRecords {
		values[session.BudgetGoalPath(userID, id)] = nil
	}
	values[session.SummaryPath(userID)] = summary

	if err := uc.store.Update(ctx, values); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to commit cascade", err)
	}

	return &DeleteCategoryOutput{
		DeletedTransactions: len(txRecords),
		DeletedBudgetGoals:  len(goalRecords),
		Summary:             summary,
	}, nil
}
