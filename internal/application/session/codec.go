package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// Stored records do not carry their own id; it is the record key and gets
// reconstituted on decode, mirroring how the remote store addresses records.

func decodeTransactions(raw json.RawMessage) (map[string]*entity.Transaction, error) {
	out := make(map[string]*entity.Transaction)
	if raw == nil {
		return out, nil
	}
	var records map[string]*entity.Transaction
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	for id, tx := range records {
		tx.ID = id
		out[id] = tx
	}
	return out, nil
}

func decodeCategories(raw json.RawMessage) (map[string]*entity.Category, error) {
	out := make(map[string]*entity.Category)
	if raw == nil {
		return out, nil
	}
	var records map[string]*entity.Category
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	for id, category := range records {
		category.ID = id
		out[id] = category
	}
	return out, nil
}

func decodeBudgetGoals(raw json.RawMessage) (map[string]*entity.BudgetGoal, error) {
	out := make(map[string]*entity.BudgetGoal)
	if raw == nil {
		return out, nil
	}
	var records map[string]*entity.BudgetGoal
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode budget goals: %w", err)
	}
	for id, goal := range records {
		goal.ID = id
		out[id] = goal
	}
	return out, nil
}

func decodeSummary(raw json.RawMessage) (entity.Summary, error) {
	if raw == nil {
		return entity.ZeroSummary(), nil
	}
	var summary entity.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return entity.ZeroSummary(), fmt.Errorf("decode summary: %w", err)
	}
	return summary, nil
}

// FetchSummary reads the current summary record for userID, treating an
// absent record as the zero summary. Mutation protocols use this read-then-
// delta sequence before every multi-path write.
func FetchSummary(ctx context.Context, store adapter.RemoteStore, userID string) (entity.Summary, error) {
	raw, err := store.GetOnce(ctx, SummaryPath(userID))
	if err != nil {
		return entity.ZeroSummary(), err
	}
	return decodeSummary(raw)
}

// FetchTransactions reads the full transaction collection for userID straight
// from the store. The drift-repair pass uses this instead of the session
// mirror: change notifications are fire-and-forget, so the mirror may lag the
// store, and a repair computed from a stale mirror would itself introduce
// drift.
func FetchTransactions(ctx context.Context, store adapter.RemoteStore, userID string) ([]*entity.Transaction, error) {
	raw, err := store.GetOnce(ctx, TransactionsPath(userID))
	if err != nil {
		return nil, err
	}
	records, err := decodeTransactions(raw)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Transaction, 0, len(records))
	for _, tx := range records {
		out = append(out, tx)
	}
	return out, nil
}

// FetchTransaction reads one transaction record, returning nil when absent.
func FetchTransaction(ctx context.Context, store adapter.RemoteStore, userID, id string) (*entity.Transaction, error) {
	raw, err := store.GetOnce(ctx, TransactionPath(userID, id))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var tx entity.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	tx.ID = id
	return &tx, nil
}
