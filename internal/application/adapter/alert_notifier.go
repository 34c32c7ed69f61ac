// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// BudgetAlert describes a budget whose current-period spend has crossed its
// limit.
type BudgetAlert struct {
	UserEmail    string
	CategoryName string
	Period       string
	Spent        decimal.Decimal
	Limit        decimal.Decimal
}

// AlertNotifier delivers budget overrun notifications. Implementations are
// best-effort; failures are logged by the caller, never propagated.
type AlertNotifier interface {
	// NotifyBudgetExceeded sends a budget overrun notification.
	NotifyBudgetExceeded(ctx context.Context, alert BudgetAlert) error
}
