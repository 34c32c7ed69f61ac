// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"encoding/json"
)

// Unsubscribe tears down a live subscription. Safe to call more than once.
type Unsubscribe func()

// RemoteStore is the contract required from the backing document store: a
// path-addressable tree of JSON records with live subscriptions and batched
// multi-path writes. Paths are '/'-separated; records live one level under
// their collection node and the finest writable unit is one record value.
type RemoteStore interface {
	// Subscribe opens a live mirror of the node at path. onChange fires once
	// immediately with the current snapshot, then after every write touching
	// the node. The returned Unsubscribe stops delivery.
	Subscribe(ctx context.Context, path string, onChange func(json.RawMessage), onError func(error)) (Unsubscribe, error)

	// GetOnce reads the node at path without subscribing. An absent node
	// yields (nil, nil).
	GetOnce(ctx context.Context, path string) (json.RawMessage, error)

	// Set overwrites the record at path. Idempotent.
	Set(ctx context.Context, path string, value any) error

	// Update applies a batched write across multiple paths in one call,
	// atomic from the caller's perspective. A nil value deletes that path.
	Update(ctx context.Context, values map[string]any) error

	// Remove deletes the node at path, subtree included.
	Remove(ctx context.Context, path string) error

	// QueryEqual returns the records under the collection at path whose
	// top-level field equals value, keyed by record id.
	QueryEqual(ctx context.Context, path, field, value string) (map[string]json.RawMessage, error)
}
