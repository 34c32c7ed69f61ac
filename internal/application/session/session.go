package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// State is the lifecycle of a user session.
type State string

const (
	// StateUnauthenticated means no mirrors are live.
	StateUnauthenticated State = "unauthenticated"
	// StateLoading means subscriptions are opening; mirrors may be partial.
	StateLoading State = "loading"
	// StateSynced means the summary subscription has delivered its first
	// snapshot. The other mirrors may still be catching up; that window is
	// eventual consistency by design, not a barrier.
	StateSynced State = "synced"
)

// Session mirrors one user's four remote collections and keeps the derived
// aggregates (budget spend rollups, summary) consistent as snapshots arrive.
// Snapshot callbacks and API reads are the only concurrent accessors; a
// single RWMutex serializes them.
type Session struct {
	userID   string
	email    string
	store    adapter.RemoteStore
	notifier adapter.AlertNotifier
	now      func() time.Time

	mu           sync.RWMutex
	state        State
	transactions map[string]*entity.Transaction
	categories   map[string]*entity.Category
	budgets      map[string]*entity.BudgetGoal
	summary      entity.Summary
	unsubscribes []adapter.Unsubscribe
}

func newSession(userID, email string, store adapter.RemoteStore, notifier adapter.AlertNotifier, now func() time.Time) *Session {
	return &Session{
		userID:       userID,
		email:        email,
		store:        store,
		notifier:     notifier,
		now:          now,
		state:        StateUnauthenticated,
		transactions: make(map[string]*entity.Transaction),
		categories:   make(map[string]*entity.Category),
		budgets:      make(map[string]*entity.BudgetGoal),
		summary:      entity.ZeroSummary(),
	}
}

// start seeds the namespace and opens the four live subscriptions.
func (s *Session) start(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	if err := s.seedDefaultCategories(ctx); err != nil {
		return fmt.Errorf("seed default categories: %w", err)
	}
	if err := s.initializeSummary(ctx); err != nil {
		return fmt.Errorf("initialize summary: %w", err)
	}

	subscriptions := []struct {
		path     string
		onChange func(json.RawMessage)
	}{
		{CategoriesPath(s.userID), s.onCategoriesSnapshot},
		{TransactionsPath(s.userID), s.onTransactionsSnapshot},
		{BudgetGoalsPath(s.userID), s.onBudgetGoalsSnapshot},
		{SummaryPath(s.userID), s.onSummarySnapshot},
	}
	for _, sub := range subscriptions {
		path := sub.path
		unsubscribe, err := s.store.Subscribe(ctx, path, sub.onChange, func(err error) {
			slog.Error("Subscription error", "user_id", s.userID, "path", path, "error", err)
		})
		if err != nil {
			s.Close()
			return fmt.Errorf("subscribe %s: %w", path, err)
		}
		s.mu.Lock()
		s.unsubscribes = append(s.unsubscribes, unsubscribe)
		s.mu.Unlock()
	}
	return nil
}

// Close tears down the subscriptions and resets every mirror. The session
// returns to Unauthenticated and can be discarded.
func (s *Session) Close() {
	s.mu.Lock()
	unsubscribes := s.unsubscribes
	s.unsubscribes = nil
	s.transactions = make(map[string]*entity.Transaction)
	s.categories = make(map[string]*entity.Category)
	s.budgets = make(map[string]*entity.BudgetGoal)
	s.summary = entity.ZeroSummary()
	s.state = StateUnauthenticated
	s.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
}

// seedDefaultCategories writes the fixed default category set when the
// categories collection is empty. One-time check; concurrent clients racing
// this write converge on one seed per-record.
func (s *Session) seedDefaultCategories(ctx context.Context) error {
	raw, err := s.store.GetOnce(ctx, CategoriesPath(s.userID))
	if err != nil {
		return err
	}
	if raw != nil {
		return nil
	}

	values := make(map[string]any)
	for _, category := range entity.DefaultCategories() {
		values[CategoryPath(s.userID, category.ID)] = category
	}
	return s.store.Update(ctx, values)
}

// initializeSummary writes a zeroed summary when the record is absent.
func (s *Session) initializeSummary(ctx context.Context) error {
	raw, err := s.store.GetOnce(ctx, SummaryPath(s.userID))
	if err != nil {
		return err
	}
	if raw != nil {
		return nil
	}
	return s.store.Set(ctx, SummaryPath(s.userID), entity.ZeroSummary())
}

func (s *Session) onCategoriesSnapshot(raw json.RawMessage) {
	categories, err := decodeCategories(raw)
	if err != nil {
		slog.Error("Malformed categories snapshot", "user_id", s.userID, "error", err)
		return
	}
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
}

func (s *Session) onTransactionsSnapshot(raw json.RawMessage) {
	transactions, err := decodeTransactions(raw)
	if err != nil {
		slog.Error("Malformed transactions snapshot", "user_id", s.userID, "error", err)
		return
	}
	s.mu.Lock()
	s.transactions = transactions
	s.mu.Unlock()

	s.RecalculateBudgetSpending(context.Background())
}

func (s *Session) onBudgetGoalsSnapshot(raw json.RawMessage) {
	budgets, err := decodeBudgetGoals(raw)
	if err != nil {
		slog.Error("Malformed budget goals snapshot", "user_id", s.userID, "error", err)
		return
	}
	s.mu.Lock()
	s.budgets = budgets
	s.mu.Unlock()

	s.RecalculateBudgetSpending(context.Background())
}

func (s *Session) onSummarySnapshot(raw json.RawMessage) {
	summary, err := decodeSummary(raw)
	if err != nil {
		slog.Error("Malformed summary snapshot", "user_id", s.userID, "error", err)
		return
	}
	s.mu.Lock()
	s.summary = summary
	if s.state == StateLoading {
		s.state = StateSynced
	}
	s.mu.Unlock()
}

// RecalculateBudgetSpending recomputes the current-period spend of every
// budget goal from the transaction mirror and writes back only the goals
// whose stored value changed, in one batched update. The pass is idempotent:
// re-running it against an unchanged mirror produces no writes, so snapshot
// ordering across collections cannot make it diverge.
func (s *Session) RecalculateBudgetSpending(ctx context.Context) {
	s.mu.RLock()
	if len(s.budgets) == 0 {
		s.mu.RUnlock()
		return
	}
	transactions := make([]*entity.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		transactions = append(transactions, tx)
	}
	budgets := make([]*entity.BudgetGoal, 0, len(s.budgets))
	for _, goal := range s.budgets {
		clone := *goal
		budgets = append(budgets, &clone)
	}
	s.mu.RUnlock()

	now := s.now()
	values := make(map[string]any)
	var alerts []adapter.BudgetAlert
	for _, goal := range budgets {
		spent := calc.SpentForPeriod(transactions, goal.CategoryID, goal.Period, now)
		if spent.Equal(goal.SpentAmount) {
			continue
		}
		if goal.SpentAmount.LessThan(goal.Amount) && !spent.LessThan(goal.Amount) {
			alerts = append(alerts, adapter.BudgetAlert{
				UserEmail:    s.email,
				CategoryName: s.CategoryNameByID(goal.CategoryID),
				Period:       string(goal.Period),
				Spent:        spent,
				Limit:        goal.Amount,
			})
		}
		goal.SpentAmount = spent
		values[BudgetGoalPath(s.userID, goal.ID)] = goal
	}
	if len(values) == 0 {
		return
	}

	if err := s.store.Update(ctx, values); err != nil {
		slog.Error("Failed to write budget spent amounts", "user_id", s.userID, "error", err)
		return
	}

	for _, alert := range alerts {
		s.notifyBudgetExceeded(ctx, alert)
	}
}

// notifyBudgetExceeded delivers an overrun alert, best-effort.
func (s *Session) notifyBudgetExceeded(ctx context.Context, alert adapter.BudgetAlert) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyBudgetExceeded(ctx, alert); err != nil {
		slog.Error("Failed to send budget alert",
			"user_id", s.userID,
			"category", alert.CategoryName,
			"error", err,
		)
	}
}

// UserID returns the stable user id this session is scoped to.
func (s *Session) UserID() string { return s.userID }

// Email returns the signed-in user's email.
func (s *Session) Email() string { return s.email }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time { return s.now() }

// Transactions returns a copy of the transaction mirror.
func (s *Session) Transactions() []*entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, tx)
	}
	return out
}

// Categories returns a copy of the category mirror.
func (s *Session) Categories() []*entity.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(s.categories))
	for _, category := range s.categories {
		out = append(out, category)
	}
	return out
}

// BudgetGoals returns a copy of the budget goal mirror.
func (s *Session) BudgetGoals() []*entity.BudgetGoal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.BudgetGoal, 0, len(s.budgets))
	for _, goal := range s.budgets {
		out = append(out, goal)
	}
	return out
}

// Summary returns the mirrored summary.
func (s *Session) Summary() entity.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// CategoryByID looks a category up in the mirror.
func (s *Session) CategoryByID(id string) (*entity.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	return category, ok
}

// CategoryNameByID resolves a category name, with a placeholder for unknown
// ids so deleted categories render harmlessly.
func (s *Session) CategoryNameByID(id string) string {
	if category, ok := s.CategoryByID(id); ok {
		return category.Name
	}
	return "N/A"
}

// TransactionsByCategory returns the expense transactions recorded against a
// category. Income movements are excluded by convention: the only callers are
// spending views.
func (s *Session) TransactionsByCategory(categoryID string) []*entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Transaction
	for _, tx := range s.transactions {
		if tx.CategoryID == categoryID && tx.Type == entity.TransactionTypeExpense {
			out = append(out, tx)
		}
	}
	return out
}
