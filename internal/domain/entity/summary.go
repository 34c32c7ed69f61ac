// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// Summary is the per-user running total of income, expenses and balance.
// It is a derived aggregate maintained incrementally by the synchronizer;
// CurrentBalance always equals TotalIncome - TotalExpenses.
type Summary struct {
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// ZeroSummary returns a summary with all totals at zero.
func ZeroSummary() Summary {
	return Summary{
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		CurrentBalance: decimal.Zero,
	}
}

// IsBalanced reports whether the balance invariant holds.
func (s Summary) IsBalanced() bool {
	return s.CurrentBalance.Equal(s.TotalIncome.Sub(s.TotalExpenses))
}
