package session

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/integration/persistence"
)

var testNow = func() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func startSession(t *testing.T, store *persistence.MemoryStore) (*Manager, *Session) {
	t.Helper()
	manager := NewManager(store, nil, testNow)
	session, err := manager.Ensure(context.Background(), "user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	t.Cleanup(manager.Shutdown)
	return manager, session
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestEnsureSeedsDefaultsAndSyncs(t *testing.T) {
	store := persistence.NewMemoryStore()
	_, session := startSession(t, store)

	if got := session.State(); got != StateSynced {
		t.Fatalf("state = %q, want %q", got, StateSynced)
	}
	if got := len(session.Categories()); got != len(entity.DefaultCategories()) {
		t.Fatalf("seeded %d categories, want %d", got, len(entity.DefaultCategories()))
	}
	summary := session.Summary()
	if !summary.TotalIncome.IsZero() || !summary.TotalExpenses.IsZero() || !summary.CurrentBalance.IsZero() {
		t.Fatalf("summary not zeroed: %+v", summary)
	}
}

func TestEnsureDoesNotReseedExistingCategories(t *testing.T) {
	store := persistence.NewMemoryStore()
	custom := entity.NewCategory("Vinyl", entity.IconPalette, "hsl(10, 50%, 50%)", entity.CategoryKindExpense)
	if err := store.Set(context.Background(), CategoryPath("user-1", custom.ID), custom); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, session := startSession(t, store)

	categories := session.Categories()
	if len(categories) != 1 {
		t.Fatalf("got %d categories, want 1 (no reseed)", len(categories))
	}
	if categories[0].Name != "Vinyl" {
		t.Fatalf("category = %q, want Vinyl", categories[0].Name)
	}
}

func TestEnsureReturnsExistingSession(t *testing.T) {
	store := persistence.NewMemoryStore()
	manager, session := startSession(t, store)

	again, err := manager.Ensure(context.Background(), "user-1", "user@example.com")
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if again != session {
		t.Fatal("second Ensure returned a different session")
	}
}

func TestRecalculateWritesOnlyChangedGoals(t *testing.T) {
	store := persistence.NewMemoryStore()
	ctx := context.Background()

	groceries := entity.NewCategory("Groceries", entity.IconShoppingCart, entity.DefaultCategoryColor, entity.CategoryKindExpense)
	if err := store.Set(ctx, CategoryPath("user-1", groceries.ID), groceries); err != nil {
		t.Fatalf("Set category: %v", err)
	}
	goal := entity.NewBudgetGoal(groceries.ID, decimal.NewFromInt(200), entity.BudgetPeriodMonthly, decimal.Zero)
	if err := store.Set(ctx, BudgetGoalPath("user-1", goal.ID), goal); err != nil {
		t.Fatalf("Set goal: %v", err)
	}

	_, session := startSession(t, store)

	tx := entity.NewTransaction(testNow(), "Weekly shop", decimal.NewFromFloat(75.50), entity.TransactionTypeExpense, groceries.ID)
	if err := store.Set(ctx, TransactionPath("user-1", tx.ID), tx); err != nil {
		t.Fatalf("Set transaction: %v", err)
	}

	waitFor(t, func() bool {
		for _, g := range session.BudgetGoals() {
			if g.ID == goal.ID && g.SpentAmount.Equal(decimal.NewFromFloat(75.50)) {
				return true
			}
		}
		return false
	})
}

func TestRecalculateIsAFixedPoint(t *testing.T) {
	store := persistence.NewMemoryStore()
	ctx := context.Background()

	groceries := entity.NewCategory("Groceries", entity.IconShoppingCart, entity.DefaultCategoryColor, entity.CategoryKindExpense)
	goal := entity.NewBudgetGoal(groceries.ID, decimal.NewFromInt(200), entity.BudgetPeriodMonthly, decimal.Zero)
	tx := entity.NewTransaction(testNow(), "Weekly shop", decimal.NewFromInt(40), entity.TransactionTypeExpense, groceries.ID)
	for path, value := range map[string]any{
		CategoryPath("user-1", groceries.ID): groceries,
		BudgetGoalPath("user-1", goal.ID):    goal,
		TransactionPath("user-1", tx.ID):     tx,
	} {
		if err := store.Set(ctx, path, value); err != nil {
			t.Fatalf("Set %s: %v", path, err)
		}
	}

	_, session := startSession(t, store)

	waitFor(t, func() bool {
		goals := session.BudgetGoals()
		return len(goals) == 1 && goals[0].SpentAmount.Equal(decimal.NewFromInt(40))
	})

	// A second pass over a converged mirror must not move anything.
	session.RecalculateBudgetSpending(ctx)
	goals := session.BudgetGoals()
	if len(goals) != 1 || !goals[0].SpentAmount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("recalculation moved a converged goal: %+v", goals)
	}
}

func TestRecalculateIgnoresOtherPeriods(t *testing.T) {
	store := persistence.NewMemoryStore()
	ctx := context.Background()

	dining := entity.NewCategory("Dining Out", entity.IconUtensils, entity.DefaultCategoryColor, entity.CategoryKindExpense)
	goal := entity.NewBudgetGoal(dining.ID, decimal.NewFromInt(100), entity.BudgetPeriodMonthly, decimal.Zero)
	if err := store.Set(ctx, CategoryPath("user-1", dining.ID), dining); err != nil {
		t.Fatalf("Set category: %v", err)
	}
	if err := store.Set(ctx, BudgetGoalPath("user-1", goal.ID), goal); err != nil {
		t.Fatalf("Set goal: %v", err)
	}

	_, session := startSession(t, store)

	lastMonth := entity.NewTransaction(testNow().AddDate(0, -1, 0), "Old dinner", decimal.NewFromInt(60), entity.TransactionTypeExpense, dining.ID)
	thisMonth := entity.NewTransaction(testNow(), "Dinner", decimal.NewFromInt(25), entity.TransactionTypeExpense, dining.ID)
	if err := store.Update(ctx, map[string]any{
		TransactionPath("user-1", lastMonth.ID): lastMonth,
		TransactionPath("user-1", thisMonth.ID): thisMonth,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	waitFor(t, func() bool {
		goals := session.BudgetGoals()
		return len(goals) == 1 && goals[0].SpentAmount.Equal(decimal.NewFromInt(25))
	})
}

func TestSummaryMirrorFollowsRemoteWrites(t *testing.T) {
	store := persistence.NewMemoryStore()
	ctx := context.Background()
	_, session := startSession(t, store)

	summary := entity.Summary{
		TotalIncome:    decimal.NewFromInt(3000),
		TotalExpenses:  decimal.NewFromFloat(75.50),
		CurrentBalance: decimal.NewFromFloat(2924.50),
	}
	if err := store.Set(ctx, SummaryPath("user-1"), summary); err != nil {
		t.Fatalf("Set summary: %v", err)
	}

	waitFor(t, func() bool {
		return session.Summary().CurrentBalance.Equal(decimal.NewFromFloat(2924.50))
	})
	if !session.Summary().IsBalanced() {
		t.Fatal("mirrored summary should be balanced")
	}
}

func TestCategoryNameByIDFallsBack(t *testing.T) {
	store := persistence.NewMemoryStore()
	_, session := startSession(t, store)

	if got := session.CategoryNameByID("missing-id"); got != "N/A" {
		t.Fatalf("CategoryNameByID = %q, want N/A", got)
	}
}

func TestTeardownResetsSession(t *testing.T) {
	store := persistence.NewMemoryStore()
	ctx := context.Background()
	manager, session := startSession(t, store)

	manager.Teardown("user-1")

	if got := session.State(); got != StateUnauthenticated {
		t.Fatalf("state after teardown = %q, want %q", got, StateUnauthenticated)
	}
	if len(session.Categories()) != 0 || len(session.Transactions()) != 0 {
		t.Fatal("mirrors not cleared on teardown")
	}

	// Writes after teardown must not reach the dead session.
	tx := entity.NewTransaction(testNow(), "Late write", decimal.NewFromInt(10), entity.TransactionTypeExpense, "cat")
	if err := store.Set(ctx, TransactionPath("user-1", tx.ID), tx); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if len(session.Transactions()) != 0 {
		t.Fatal("closed session received a snapshot")
	}
}

func TestSpentMatchesCalcHelper(t *testing.T) {
	store := persistence.NewMemoryStore()
	ctx := context.Background()

	travel := entity.NewCategory("Travel", entity.IconPlane, entity.DefaultCategoryColor, entity.CategoryKindExpense)
	goal := entity.NewBudgetGoal(travel.ID, decimal.NewFromInt(500), entity.BudgetPeriodYearly, decimal.Zero)
	if err := store.Set(ctx, CategoryPath("user-1", travel.ID), travel); err != nil {
		t.Fatalf("Set category: %v", err)
	}
	if err := store.Set(ctx, BudgetGoalPath("user-1", goal.ID), goal); err != nil {
		t.Fatalf("Set goal: %v", err)
	}

	_, session := startSession(t, store)

	txs := []*entity.Transaction{
		entity.NewTransaction(testNow(), "Flight", decimal.NewFromInt(320), entity.TransactionTypeExpense, travel.ID),
		entity.NewTransaction(testNow().AddDate(0, -2, 0), "Train", decimal.NewFromInt(45), entity.TransactionTypeExpense, travel.ID),
	}
	values := make(map[string]any)
	for _, tx := range txs {
		values[TransactionPath("user-1", tx.ID)] = tx
	}
	if err := store.Update(ctx, values); err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := calc.SpentForPeriod(txs, travel.ID, entity.BudgetPeriodYearly, testNow())
	waitFor(t, func() bool {
		goals := session.BudgetGoals()
		return len(goals) == 1 && goals[0].SpentAmount.Equal(want)
	})
}
