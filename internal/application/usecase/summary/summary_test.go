package summary

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/integration/persistence"
)

var testNow = func() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newSession(t *testing.T) (*persistence.MemoryStore, *session.Session) {
	t.Helper()
	store := persistence.NewMemoryStore()
	manager := session.NewManager(store, nil, testNow)
	sess, err := manager.Ensure(context.Background(), "user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	t.Cleanup(manager.Shutdown)
	return store, sess
}

func addExpense(t *testing.T, store *persistence.MemoryStore, sess *session.Session, amount decimal.Decimal) {
	t.Helper()
	var categoryID string
	for _, category := range sess.Categories() {
		if category.Kind == entity.CategoryKindExpense {
			categoryID = category.ID
			break
		}
	}
	_, err := transaction.NewAddTransactionUseCase(store).Execute(context.Background(), transaction.AddTransactionInput{
		Session: sess, Date: testNow(), Description: "expense",
		Amount: amount, Type: entity.TransactionTypeExpense, CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
}

func TestGetSummaryReadsMirror(t *testing.T) {
	store, sess := newSession(t)
	addExpense(t, store, sess, decimal.NewFromInt(25))

	out, err := NewGetSummaryUseCase().Execute(context.Background(), GetSummaryInput{Session: sess})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !out.Summary.TotalExpenses.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("total expenses = %s, want 25", out.Summary.TotalExpenses)
	}
}

func TestRecomputeDetectsNoDriftWhenConsistent(t *testing.T) {
	store, sess := newSession(t)
	addExpense(t, store, sess, decimal.NewFromInt(25))

	out, err := NewRecomputeSummaryUseCase(store).Execute(context.Background(), RecomputeSummaryInput{Session: sess})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if out.Drifted {
		t.Fatal("reported drift on a consistent summary")
	}
}

func TestRecomputeReadsStoreNotMirror(t *testing.T) {
	store, sess := newSession(t)
	ctx := context.Background()

	// A committed write the mirror never saw: stop the subscriptions, then
	// seed an income transaction and its matching summary store-side. The
	// repair must trust the store — recomputing from the stale mirror would
	// zero a correct summary.
	sess.Close()
	income := entity.NewTransaction(testNow(), "salary", decimal.NewFromInt(3000), entity.TransactionTypeIncome, "cat-salary")
	consistent := entity.Summary{
		TotalIncome:    decimal.NewFromInt(3000),
		TotalExpenses:  decimal.Zero,
		CurrentBalance: decimal.NewFromInt(3000),
	}
	if err := store.Update(ctx, map[string]any{
		session.TransactionPath("user-1", income.ID): income,
		session.SummaryPath("user-1"):                consistent,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	out, err := NewRecomputeSummaryUseCase(store).Execute(ctx, RecomputeSummaryInput{Session: sess})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if out.Drifted {
		t.Fatal("stale mirror reported as drift")
	}
	if !out.Summary.TotalIncome.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("total income = %s, want 3000", out.Summary.TotalIncome)
	}

	stored, err := session.FetchSummary(ctx, store, "user-1")
	if err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	if !stored.CurrentBalance.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("stored balance = %s, want 3000", stored.CurrentBalance)
	}
}

func TestRecomputeRepairsDriftedSummary(t *testing.T) {
	store, sess := newSession(t)
	ctx := context.Background()
	addExpense(t, store, sess, decimal.NewFromInt(25))

	// Simulate a lost update: the stored summary no longer matches the log.
	corrupted := entity.Summary{
		TotalIncome:    decimal.NewFromInt(999),
		TotalExpenses:  decimal.Zero,
		CurrentBalance: decimal.NewFromInt(999),
	}
	if err := store.Set(ctx, session.SummaryPath("user-1"), corrupted); err != nil {
		t.Fatalf("Set: %v", err)
	}

	out, err := NewRecomputeSummaryUseCase(store).Execute(ctx, RecomputeSummaryInput{Session: sess})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !out.Drifted {
		t.Fatal("drift not detected")
	}
	if !out.Summary.TotalExpenses.Equal(decimal.NewFromInt(25)) || !out.Summary.TotalIncome.IsZero() {
		t.Fatalf("repaired summary wrong: %+v", out.Summary)
	}

	stored, err := session.FetchSummary(ctx, store, "user-1")
	if err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	if !stored.CurrentBalance.Equal(out.Summary.CurrentBalance) {
		t.Fatalf("stored balance = %s, want %s", stored.CurrentBalance, out.Summary.CurrentBalance)
	}
}
