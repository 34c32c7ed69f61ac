package budget

import (
	"context"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/session"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// DeleteBudgetGoalInput represents the input for budget goal removal.
type DeleteBudgetGoalInput struct {
	Session *session.Session
	ID      string
}

// DeleteBudgetGoalUseCase handles budget goal removal logic.
type DeleteBudgetGoalUseCase struct {
	store adapter.RemoteStore
}

// NewDeleteBudgetGoalUseCase creates a new DeleteBudgetGoalUseCase instance.
func NewDeleteBudgetGoalUseCase(store adapter.RemoteStore) *DeleteBudgetGoalUseCase {
	return &DeleteBudgetGoalUseCase{store: store}
}

// Execute removes the goal record. Transactions are untouched; goals carry no
// back-references.
func (uc *DeleteBudgetGoalUseCase) Execute(ctx context.Context, input DeleteBudgetGoalInput) error {
	if !budgetGoalExists(input.Session, input.ID) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget goal not found",
			domainerror.ErrBudgetGoalNotFound,
		)
	}
	userID := input.Session.UserID()
	if err := uc.store.Remove(ctx, session.BudgetGoalPath(userID, input.ID)); err != nil {
		return domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to remove budget goal", err)
	}
	return nil
}
