package budget

import (
	"context"
	"sort"

	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// BudgetGoalView is a goal joined with its category name and progress.
type BudgetGoalView struct {
	Goal            *entity.BudgetGoal
	CategoryName    string
	ProgressPercent float64
}

// ListBudgetGoalsInput represents the input for listing budget goals.
type ListBudgetGoalsInput struct {
	Session *session.Session
}

// ListBudgetGoalsOutput represents the output of listing budget goals.
type ListBudgetGoalsOutput struct {
	Goals []BudgetGoalView
}

// ListBudgetGoalsUseCase reads the budget mirror and derives progress.
type ListBudgetGoalsUseCase struct{}

// NewListBudgetGoalsUseCase creates a new ListBudgetGoalsUseCase instance.
func NewListBudgetGoalsUseCase() *ListBudgetGoalsUseCase {
	return &ListBudgetGoalsUseCase{}
}

// Execute returns the mirrored goals with progress clamped to [0, 100],
// ordered by category name for stable output.
func (uc *ListBudgetGoalsUseCase) Execute(ctx context.Context, input ListBudgetGoalsInput) (*ListBudgetGoalsOutput, error) {
	goals := input.Session.BudgetGoals()
	views := make([]BudgetGoalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, BudgetGoalView{
			Goal:            goal,
			CategoryName:    input.Session.CategoryNameByID(goal.CategoryID),
			ProgressPercent: calc.ProgressPercent(goal.SpentAmount, goal.Amount),
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CategoryName < views[j].CategoryName
	})
	return &ListBudgetGoalsOutput{Goals: views}, nil
}
