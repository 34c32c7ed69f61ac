// Package persistence implements the RemoteStore contract and the auth
// repositories backed by it.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// MemoryStore is an in-process RemoteStore used as the test double for the
// external document store and as the fallback when no Redis is reachable.
// It mirrors the RedisStore semantics: record-granular writes, atomic
// multi-path batches, in-order per-path change notification.
type MemoryStore struct {
	mu      sync.RWMutex
	nodes   map[string]map[string]json.RawMessage // collection path -> record id -> value
	subs    map[string]map[int]*memorySubscriber  // subscribed path -> subscriber id -> subscriber
	nextSub int
}

type memorySubscriber struct {
	path     string
	onChange func(json.RawMessage)
	onError  func(error)
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: make(map[string]map[string]json.RawMessage),
		subs:  make(map[string]map[int]*memorySubscriber),
	}
}

// Subscribe opens a live mirror of the node at p. The callback fires once
// synchronously with the current snapshot before Subscribe returns.
func (s *MemoryStore) Subscribe(ctx context.Context, p string, onChange func(json.RawMessage), onError func(error)) (adapter.Unsubscribe, error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	if s.subs[p] == nil {
		s.subs[p] = make(map[int]*memorySubscriber)
	}
	sub := &memorySubscriber{path: p, onChange: onChange, onError: onError}
	s.subs[p][id] = sub
	snapshot := s.snapshotLocked(p)
	s.mu.Unlock()

	onChange(snapshot)

	unsubscribe := func() {
		s.mu.Lock()
		if subs, ok := s.subs[p]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(s.subs, p)
			}
		}
		s.mu.Unlock()
	}
	return unsubscribe, nil
}

// GetOnce reads the node at p without subscribing.
func (s *MemoryStore) GetOnce(ctx context.Context, p string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(p), nil
}

// Set overwrites the record at p.
func (s *MemoryStore) Set(ctx context.Context, p string, value any) error {
	return s.Update(ctx, map[string]any{p: value})
}

// Update applies a batched multi-path write under a single lock acquisition;
// either every path is written or (on marshal failure) none is.
func (s *MemoryStore) Update(ctx context.Context, values map[string]any) error {
	encoded := make(map[string]json.RawMessage, len(values))
	for p, value := range values {
		if value == nil {
			encoded[p] = nil
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, fmt.Sprintf("marshal value for %s", p), err)
		}
		encoded[p] = raw
	}

	s.mu.Lock()
	touched := make(map[string]struct{})
	for p, raw := range encoded {
		dir, base := path.Dir(p), path.Base(p)
		if raw == nil {
			delete(s.nodes[dir], base)
			if len(s.nodes[dir]) == 0 {
				delete(s.nodes, dir)
			}
		} else {
			if s.nodes[dir] == nil {
				s.nodes[dir] = make(map[string]json.RawMessage)
			}
			s.nodes[dir][base] = raw
		}
		touched[dir] = struct{}{}
		touched[p] = struct{}{}
	}
	deliveries := s.collectDeliveriesLocked(touched)
	s.mu.Unlock()

	for _, d := range deliveries {
		d()
	}
	return nil
}

// Remove deletes the node at p, subtree included.
func (s *MemoryStore) Remove(ctx context.Context, p string) error {
	s.mu.Lock()
	touched := map[string]struct{}{p: {}}
	if _, isCollection := s.nodes[p]; isCollection {
		delete(s.nodes, p)
	} else {
		dir, base := path.Dir(p), path.Base(p)
		delete(s.nodes[dir], base)
		if len(s.nodes[dir]) == 0 {
			delete(s.nodes, dir)
		}
		touched[dir] = struct{}{}
	}
	deliveries := s.collectDeliveriesLocked(touched)
	s.mu.Unlock()

	for _, d := range deliveries {
		d()
	}
	return nil
}

// QueryEqual returns the records under the collection at p whose top-level
// field equals value.
func (s *MemoryStore) QueryEqual(ctx context.Context, p, field, value string) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make(map[string]json.RawMessage)
	for id, raw := range s.nodes[p] {
		if recordFieldEquals(raw, field, value) {
			matches[id] = raw
		}
	}
	return matches, nil
}

// snapshotLocked renders the node at p: a JSON object for a collection, the
// raw record for a leaf, nil when absent. Caller holds at least a read lock.
func (s *MemoryStore) snapshotLocked(p string) json.RawMessage {
	if records, ok := s.nodes[p]; ok {
		return encodeCollection(records)
	}
	dir, base := path.Dir(p), path.Base(p)
	if raw, ok := s.nodes[dir][base]; ok {
		return raw
	}
	return nil
}

// collectDeliveriesLocked binds fresh snapshots to the subscribers of every
// touched path. The returned closures run after the lock is released so that
// callbacks may re-enter the store.
func (s *MemoryStore) collectDeliveriesLocked(touched map[string]struct{}) []func() {
	paths := make([]string, 0, len(touched))
	for p := range touched {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var deliveries []func()
	for _, p := range paths {
		subs, ok := s.subs[p]
		if !ok {
			continue
		}
		snapshot := s.snapshotLocked(p)
		for _, sub := range subs {
			onChange := sub.onChange
			deliveries = append(deliveries, func() { onChange(snapshot) })
		}
	}
	return deliveries
}

// encodeCollection renders a record map as a single JSON object keyed by id.
func encodeCollection(records map[string]json.RawMessage) json.RawMessage {
	if len(records) == 0 {
		return nil
	}
	object := make(map[string]json.RawMessage, len(records))
	for id, raw := range records {
		object[id] = raw
	}
	encoded, err := json.Marshal(object)
	if err != nil {
		return nil
	}
	return encoded
}

// recordFieldEquals decodes a record and compares one top-level string field.
func recordFieldEquals(raw json.RawMessage, field, value string) bool {
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return false
	}
	got, ok := record[field].(string)
	return ok && got == value
}
