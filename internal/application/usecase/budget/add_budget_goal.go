// Package budget contains budget-goal use cases. The stored spentAmount is
// derived state: every write recomputes it from the transaction mirror, and
// caller-supplied values are never trusted.
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

// AddBudgetGoalInput represents the input for budget goal creation.
type AddBudgetGoalInput struct {
	Session    *session.Session
	CategoryID string
	Amount     decimal.Decimal
	Period     entity.BudgetPeriod
}

// AddBudgetGoalOutput represents the output of budget goal creation.
type AddBudgetGoalOutput struct {
	BudgetGoal *entity.BudgetGoal
}

// AddBudgetGoalUseCase handles budget goal creation logic.
type AddBudgetGoalUseCase struct {
	store adapter.RemoteStore
}

// NewAddBudgetGoalUseCase creates a new AddBudgetGoalUseCase instance.
func NewAddBudgetGoalUseCase(store adapter.RemoteStore) *AddBudgetGoalUseCase {
	return &AddBudgetGoalUseCase{store: store}
}

// Execute creates the goal with its current-period spend already computed, so
// a goal added mid-period starts from reality rather than zero.
func (uc *AddBudgetGoalUseCase) Execute(ctx context.Context, input AddBudgetGoalInput) (*AddBudgetGoalOutput, error) {
	if err := validateBudgetFields(input.Session, input.CategoryID, input.Amount, input.Period); err != nil {
		return nil, err
	}

	spent := calc.SpentForPeriod(input.Session.Transactions(), input.CategoryID, input.Period, input.Session.Now())
	goal := entity.NewBudgetGoal(input.CategoryID, input.Amount, input.Period, spent)

	userID := input.Session.UserID()
	if err := uc.store.Set(ctx, session.BudgetGoalPath(userID, goal.ID), goal); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to write budget goal", err)
	}
	return &AddBudgetGoalOutput{BudgetGoal: goal}, nil
}

func validateBudgetFields(sess *session.Session, categoryID string, amount decimal.Decimal, period entity.BudgetPeriod) error {
	if amount.Sign() <= 0 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must be positive",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if !period.IsValid() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'monthly' or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
	category, ok := sess.CategoryByID(categoryID)
	if !ok {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category does not exist",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}
	if category.Kind == entity.CategoryKindIncome {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotAllowed,
			"income categories cannot be budgeted",
			domainerror.ErrBudgetCategoryNotBudgetable,
		)
	}
	return nil
}
