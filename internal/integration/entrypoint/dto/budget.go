package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/usecase/budget"
)

// CreateBudgetGoalRequest represents the request body for budget goal creation.
type CreateBudgetGoalRequest struct {
	CategoryID string          `json:"category_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Period     string          `json:"period" binding:"required,oneof=monthly yearly"`
}

// UpdateBudgetGoalRequest represents the request body for budget goal update.
type UpdateBudgetGoalRequest struct {
	CategoryID string          `json:"category_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Period     string          `json:"period" binding:"required,oneof=monthly yearly"`
}

// BudgetGoalResponse represents a single budget goal in API responses.
type BudgetGoalResponse struct {
	ID              string          `json:"id"`
	CategoryID      string          `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	Amount          decimal.Decimal `json:"amount"`
	Period          string          `json:"period"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	ProgressPercent float64         `json:"progress_percent"`
}

// BudgetGoalListResponse represents the response for listing budget goals.
type BudgetGoalListResponse struct {
	BudgetGoals []BudgetGoalResponse `json:"budget_goals"`
}

// ToBudgetGoalViewResponse converts a budget goal view to its response DTO.
func ToBudgetGoalViewResponse(view budget.BudgetGoalView) BudgetGoalResponse {
	return BudgetGoalResponse{
		ID:              view.Goal.ID,
		CategoryID:      view.Goal.CategoryID,
		CategoryName:    view.CategoryName,
		Amount:          view.Goal.Amount,
		Period:          string(view.Goal.Period),
		SpentAmount:     view.Goal.SpentAmount,
		ProgressPercent: view.ProgressPercent,
	}
}
