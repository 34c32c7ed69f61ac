package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// SummaryResponse represents the financial summary in API responses.
type SummaryResponse struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// RecomputeSummaryResponse reports a summary repair run.
type RecomputeSummaryResponse struct {
	Summary SummaryResponse `json:"summary"`
	Drifted bool            `json:"drifted"`
}

// ToSummaryResponse converts a domain Summary to a SummaryResponse DTO.
func ToSummaryResponse(summary entity.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:    summary.TotalIncome,
		TotalExpenses:  summary.TotalExpenses,
		CurrentBalance: summary.CurrentBalance,
	}
}
