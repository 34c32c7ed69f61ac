package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// Both implementations must satisfy the same contract, so every test runs
// against both.
func stores(t *testing.T) map[string]adapter.RemoteStore {
	t.Helper()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]adapter.RemoteStore{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(client),
	}
}

type record struct {
	Name       string `json:"name"`
	CategoryID string `json:"categoryId,omitempty"`
}

func TestSetAndGetOnce(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Set(ctx, "users/u1/categories/c1", record{Name: "Groceries"}); err != nil {
				t.Fatalf("Set: %v", err)
			}

			raw, err := store.GetOnce(ctx, "users/u1/categories/c1")
			if err != nil {
				t.Fatalf("GetOnce: %v", err)
			}
			var got record
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Name != "Groceries" {
				t.Errorf("got %+v", got)
			}

			// The collection node renders as an object keyed by record id.
			raw, err = store.GetOnce(ctx, "users/u1/categories")
			if err != nil {
				t.Fatalf("GetOnce collection: %v", err)
			}
			var collection map[string]record
			if err := json.Unmarshal(raw, &collection); err != nil {
				t.Fatalf("unmarshal collection: %v", err)
			}
			if len(collection) != 1 || collection["c1"].Name != "Groceries" {
				t.Errorf("collection = %+v", collection)
			}
		})
	}
}

func TestGetOnceAbsent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			raw, err := store.GetOnce(context.Background(), "users/u1/summary")
			if err != nil {
				t.Fatalf("GetOnce: %v", err)
			}
			if raw != nil {
				t.Errorf("expected nil snapshot for absent node, got %s", raw)
			}
		})
	}
}

func TestUpdateMultiPathAndDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Update(ctx, map[string]any{
				"users/u1/transactions/t1": record{Name: "coffee"},
				"users/u1/summary":         record{Name: "summary"},
			}); err != nil {
				t.Fatalf("Update: %v", err)
			}

			// nil value deletes that path in the same batch as another write.
			if err := store.Update(ctx, map[string]any{
				"users/u1/transactions/t1": nil,
				"users/u1/transactions/t2": record{Name: "lunch"},
			}); err != nil {
				t.Fatalf("Update with delete: %v", err)
			}

			if raw, _ := store.GetOnce(ctx, "users/u1/transactions/t1"); raw != nil {
				t.Errorf("t1 should be deleted, got %s", raw)
			}
			if raw, _ := store.GetOnce(ctx, "users/u1/transactions/t2"); raw == nil {
				t.Error("t2 should exist")
			}
			if raw, _ := store.GetOnce(ctx, "users/u1/summary"); raw == nil {
				t.Error("summary should exist")
			}
		})
	}
}

func TestRemove(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_ = store.Set(ctx, "users/u1/budgetGoals/b1", record{Name: "one"})
			_ = store.Set(ctx, "users/u1/budgetGoals/b2", record{Name: "two"})

			// Removing a record leaves its siblings alone.
			if err := store.Remove(ctx, "users/u1/budgetGoals/b1"); err != nil {
				t.Fatalf("Remove record: %v", err)
			}
			if raw, _ := store.GetOnce(ctx, "users/u1/budgetGoals/b1"); raw != nil {
				t.Error("b1 should be gone")
			}
			if raw, _ := store.GetOnce(ctx, "users/u1/budgetGoals/b2"); raw == nil {
				t.Error("b2 should remain")
			}

			// Removing the collection path deletes the subtree.
			if err := store.Remove(ctx, "users/u1/budgetGoals"); err != nil {
				t.Fatalf("Remove collection: %v", err)
			}
			if raw, _ := store.GetOnce(ctx, "users/u1/budgetGoals"); raw != nil {
				t.Error("collection should be gone")
			}
		})
	}
}

func TestQueryEqual(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_ = store.Set(ctx, "users/u1/transactions/t1", record{Name: "bread", CategoryID: "groceries"})
			_ = store.Set(ctx, "users/u1/transactions/t2", record{Name: "bus", CategoryID: "transport"})
			_ = store.Set(ctx, "users/u1/transactions/t3", record{Name: "milk", CategoryID: "groceries"})

			matches, err := store.QueryEqual(ctx, "users/u1/transactions", "categoryId", "groceries")
			if err != nil {
				t.Fatalf("QueryEqual: %v", err)
			}
			if len(matches) != 2 {
				t.Fatalf("got %d matches, want 2", len(matches))
			}
			if _, ok := matches["t1"]; !ok {
				t.Error("t1 should match")
			}
			if _, ok := matches["t3"]; !ok {
				t.Error("t3 should match")
			}
		})
	}
}

func TestSubscribeDeliversInitialSnapshotThenWrites(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_ = store.Set(ctx, "users/u1/categories/c1", record{Name: "Groceries"})

			snapshots := make(chan json.RawMessage, 8)
			unsubscribe, err := store.Subscribe(ctx, "users/u1/categories",
				func(raw json.RawMessage) { snapshots <- raw },
				func(err error) { t.Errorf("subscription error: %v", err) },
			)
			if err != nil {
				t.Fatalf("Subscribe: %v", err)
			}
			defer unsubscribe()

			initial := waitForSnapshot(t, snapshots)
			var collection map[string]record
			if err := json.Unmarshal(initial, &collection); err != nil || len(collection) != 1 {
				t.Fatalf("initial snapshot = %s (err %v)", initial, err)
			}

			if err := store.Set(ctx, "users/u1/categories/c2", record{Name: "Transport"}); err != nil {
				t.Fatalf("Set: %v", err)
			}

			next := waitForCollectionSize(t, snapshots, 2)
			if err := json.Unmarshal(next, &collection); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if collection["c2"].Name != "Transport" {
				t.Errorf("snapshot = %+v", collection)
			}
		})
	}
}

func waitForSnapshot(t *testing.T, snapshots <-chan json.RawMessage) json.RawMessage {
	t.Helper()
	select {
	case raw := <-snapshots:
		return raw
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

// waitForCollectionSize skips intermediate snapshots until one holds the
// expected number of records; per-path delivery is ordered, so the final
// state always arrives.
func waitForCollectionSize(t *testing.T, snapshots <-chan json.RawMessage, size int) json.RawMessage {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case raw := <-snapshots:
			var collection map[string]json.RawMessage
			if err := json.Unmarshal(raw, &collection); err == nil && len(collection) == size {
				return raw
			}
		case <-deadline:
			t.Fatalf("timed out waiting for collection of size %d", size)
			return nil
		}
	}
}
