package budget

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// UpdateBudgetGoalInput represents the input for budget goal replacement.
type UpdateBudgetGoalInput struct {
	Session    *session.Session
	ID         string
	CategoryID string
	Amount     decimal.Decimal
	Period     entity.BudgetPeriod
}

// UpdateBudgetGoalOutput represents the output of budget goal replacement.
type UpdateBudgetGoalOutput struct {
	BudgetGoal *entity.BudgetGoal
}

// UpdateBudgetGoalUseCase handles budget goal replacement logic.
type UpdateBudgetGoalUseCase struct {
	store adapter.RemoteStore
}

// NewUpdateBudgetGoalUseCase creates a new UpdateBudgetGoalUseCase instance.
func NewUpdateBudgetGoalUseCase(store adapter.RemoteStore) *UpdateBudgetGoalUseCase {
	return &UpdateBudgetGoalUseCase{store: store}
}

// Execute rewrites the goal, recomputing spentAmount for the possibly-changed
// category and period.
func (uc *UpdateBudgetGoalUseCase) Execute(ctx context.Context, input UpdateBudgetGoalInput) (*UpdateBudgetGoalOutput, error) {
	if err := validateBudgetFields(input.Session, input.CategoryID, input.Amount, input.Period); err != nil {
		return nil, err
	}

	if !budgetGoalExists(input.Session, input.ID) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget goal not found",
			domainerror.ErrBudgetGoalNotFound,
		)
	}

	spent := calc.SpentForPeriod(input.Session.Transactions(), input.CategoryID, input.Period, input.Session.Now())
	goal := &entity.BudgetGoal{
		ID:          input.ID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Period:      input.Period,
		SpentAmount: spent,
	}

	userID := input.Session.UserID()
	if err := uc.store.Set(ctx, session.BudgetGoalPath(userID, goal.ID), goal); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to write budget goal", err)
	}
	return &UpdateBudgetGoalOutput{BudgetGoal: goal}, nil
}

func budgetGoalExists(sess *session.Session, id string) bool {
	for _, goal := range sess.BudgetGoals() {
		if goal.ID == id {
			return true
		}
	}
	return false
}
