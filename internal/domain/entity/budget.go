// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the recurring calendar window a budget is measured
// against.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// IsValid reports whether the budget period is a known value.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodYearly
}

// BudgetGoal represents a target spend ceiling for a category over a recurring
// period. SpentAmount is a persisted derived cache of the current-period spend;
// it is recomputed by the synchronizer and never accepted from callers.
type BudgetGoal struct {
	ID          string          `json:"-"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Period      BudgetPeriod    `json:"period"`
	SpentAmount decimal.Decimal `json:"spentAmount"`
}

// NewBudgetGoal creates a new BudgetGoal entity with a fresh record id.
func NewBudgetGoal(categoryID string, amount decimal.Decimal, period BudgetPeriod, spentAmount decimal.Decimal) *BudgetGoal {
	return &BudgetGoal{
		ID:          uuid.NewString(),
		CategoryID:  categoryID,
		Amount:      amount,
		Period:      period,
		SpentAmount: spentAmount,
	}
}
