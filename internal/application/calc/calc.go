// Package calc provides the pure aggregate calculations behind budget spend
// rollups and the running income/expense/balance summary. Nothing here touches
// the store; every function is side-effect free and safe to re-run.
package calc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// PeriodWindow returns the closed calendar interval containing now for the
// given period: the current month for monthly budgets, the current year for
// yearly ones. The end bound is the last nanosecond of the window so that a
// transaction dated exactly at either bound is counted exactly once.
func PeriodWindow(period entity.BudgetPeriod, now time.Time) (start, end time.Time) {
	loc := now.Location()

	switch period {
	case entity.BudgetPeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default: // monthly
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
	return start, end
}

// InPeriod reports whether t falls inside the period window containing now.
func InPeriod(t time.Time, period entity.BudgetPeriod, now time.Time) bool {
	start, end := PeriodWindow(period, now)
	return !t.Before(start) && !t.After(end)
}

// SpentForPeriod sums the expense-type transaction amounts for categoryID
// whose date falls in the period window containing now.
func SpentForPeriod(transactions []*entity.Transaction, categoryID string, period entity.BudgetPeriod, now time.Time) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != entity.TransactionTypeExpense || tx.CategoryID != categoryID {
			continue
		}
		if !InPeriod(tx.Date, period, now) {
			continue
		}
		spent = spent.Add(tx.Amount)
	}
	return spent
}

// ApplyTransactionDelta adds (sign=+1) or removes (sign=-1) a transaction's
// contribution to the summary. The balance is always recomputed as income
// minus expenses; it never drifts independently.
func ApplyTransactionDelta(summary entity.Summary, tx *entity.Transaction, sign int) entity.Summary {
	amount := tx.Amount
	if sign < 0 {
		amount = amount.Neg()
	}

	if tx.Type == entity.TransactionTypeIncome {
		summary.TotalIncome = summary.TotalIncome.Add(amount)
	} else {
		summary.TotalExpenses = summary.TotalExpenses.Add(amount)
	}
	summary.CurrentBalance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// RecomputeSummary rebuilds the summary from scratch over the full transaction
// set. This is the drift-repair counterpart of the incremental delta path.
func RecomputeSummary(transactions []*entity.Transaction) entity.Summary {
	summary := entity.ZeroSummary()
	for _, tx := range transactions {
		if tx.Type == entity.TransactionTypeIncome {
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)
		}
	}
	summary.CurrentBalance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// ProgressPercent returns how much of the goal has been spent, clamped to
// [0, 100]. A non-positive goal yields 0.
func ProgressPercent(spent, goal decimal.Decimal) float64 {
	if goal.Sign() <= 0 {
		return 0
	}
	percent, _ := spent.Div(goal).Mul(decimal.NewFromInt(100)).Float64()
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
