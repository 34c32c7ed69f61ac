package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/persistence"
)

var testNow = func() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

type fixture struct {
	store   *persistence.MemoryStore
	session *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := persistence.NewMemoryStore()
	manager := session.NewManager(store, nil, testNow)
	sess, err := manager.Ensure(context.Background(), "user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	t.Cleanup(manager.Shutdown)
	return &fixture{store: store, session: sess}
}

func (f *fixture) categoryNamed(t *testing.T, name string) *entity.Category {
	t.Helper()
	for _, category := range f.session.Categories() {
		if category.Name == name {
			return category
		}
	}
	t.Fatalf("no category named %q", name)
	return nil
}

func TestAddCategoryAppliesDefaults(t *testing.T) {
	f := newFixture(t)

	out, err := NewAddCategoryUseCase(f.store).Execute(context.Background(), AddCategoryInput{
		Session: f.session,
		Name:    "Board Games",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Category.Icon != entity.DefaultCategoryIcon {
		t.Fatalf("icon = %s, want default", out.Category.Icon)
	}
	if out.Category.Color != entity.DefaultCategoryColor {
		t.Fatalf("color = %s, want default", out.Category.Color)
	}
	if out.Category.Kind != entity.CategoryKindExpense {
		t.Fatalf("kind = %s, want expense", out.Category.Kind)
	}
	if _, ok := f.session.CategoryByID(out.Category.ID); !ok {
		t.Fatal("category not mirrored after write")
	}
}

func TestAddCategoryValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		input    AddCategoryInput
		wantCode domainerror.CategoryErrorCode
	}{
		{
			name:     "empty name",
			input:    AddCategoryInput{Session: f.session},
			wantCode: domainerror.ErrCodeEmptyCategoryName,
		},
		{
			name:     "unsupported icon",
			input:    AddCategoryInput{Session: f.session, Name: "X", Icon: "Rocketship"},
			wantCode: domainerror.ErrCodeInvalidCategoryIcon,
		},
		{
			name:     "invalid kind",
			input:    AddCategoryInput{Session: f.session, Name: "X", Kind: "mixed"},
			wantCode: domainerror.ErrCodeInvalidCategoryKind,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddCategoryUseCase(f.store).Execute(context.Background(), tt.input)
			var catErr *domainerror.CategoryError
			if !errors.As(err, &catErr) {
				t.Fatalf("error = %v, want CategoryError", err)
			}
			if catErr.Code != tt.wantCode {
				t.Fatalf("code = %s, want %s", catErr.Code, tt.wantCode)
			}
		})
	}
}

func TestUpdateCategoryKeepsUnsetFields(t *testing.T) {
	f := newFixture(t)
	groceries := f.categoryNamed(t, "Groceries")

	out, err := NewUpdateCategoryUseCase(f.store).Execute(context.Background(), UpdateCategoryInput{
		Session: f.session,
		ID:      groceries.ID,
		Name:    "Food",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Category.Name != "Food" {
		t.Fatalf("name = %s, want Food", out.Category.Name)
	}
	if out.Category.Icon != groceries.Icon || out.Category.Color != groceries.Color || out.Category.Kind != groceries.Kind {
		t.Fatalf("unset fields not carried over: %+v", out.Category)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	groceries := f.categoryNamed(t, "Groceries")
	dining := f.categoryNamed(t, "Dining Out")

	addTx := transaction.NewAddTransactionUseCase(f.store)
	if _, err := addTx.Execute(ctx, transaction.AddTransactionInput{
		Session: f.session, Date: testNow(), Description: "Weekly shop",
		Amount: decimal.NewFromInt(60), Type: entity.TransactionTypeExpense, CategoryID: groceries.ID,
	}); err != nil {
		t.Fatalf("add groceries tx: %v", err)
	}
	if _, err := addTx.Execute(ctx, transaction.AddTransactionInput{
		Session: f.session, Date: testNow(), Description: "Dinner",
		Amount: decimal.NewFromInt(40), Type: entity.TransactionTypeExpense, CategoryID: dining.ID,
	}); err != nil {
		t.Fatalf("add dining tx: %v", err)
	}
	goal := entity.NewBudgetGoal(groceries.ID, decimal.NewFromInt(200), entity.BudgetPeriodMonthly, decimal.Zero)
	if err := f.store.Set(ctx, session.BudgetGoalPath("user-1", goal.ID), goal); err != nil {
		t.Fatalf("Set goal: %v", err)
	}

	out, err := NewDeleteCategoryUseCase(f.store).Execute(ctx, DeleteCategoryInput{
		Session: f.session, ID: groceries.ID,
	})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.DeletedTransactions != 1 || out.DeletedBudgetGoals != 1 {
		t.Fatalf("cascade = %d txs, %d goals; want 1 and 1", out.DeletedTransactions, out.DeletedBudgetGoals)
	}
	// Only the dining expense survives in the summary.
	if !out.Summary.TotalExpenses.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("total expenses = %s, want 40", out.Summary.TotalExpenses)
	}

	if _, ok := f.session.CategoryByID(groceries.ID); ok {
		t.Fatal("category still mirrored after delete")
	}
	stored, err := f.store.QueryEqual(ctx, session.TransactionsPath("user-1"), "categoryId", groceries.ID)
	if err != nil {
		t.Fatalf("QueryEqual: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("%d orphaned transactions remain", len(stored))
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := NewDeleteCategoryUseCase(f.store).Execute(context.Background(), DeleteCategoryInput{
		Session: f.session, ID: "missing",
	})
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Fatalf("error = %v, want ErrCategoryNotFound", err)
	}
}
