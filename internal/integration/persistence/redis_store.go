package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/redis/go-redis/v9"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// channelPrefix namespaces the change-notification channels so the store can
// share a Redis database with the token repository.
const channelPrefix = "store:"

// RedisStore implements the RemoteStore contract on Redis. Each collection
// node maps to a hash keyed by its full path with one field per record;
// leaf records (the summary) live as fields of their parent node's hash.
// Multi-path updates run in one MULTI/EXEC pipeline, and every committed
// write publishes on the channels of the touched node and its parent so
// subscribers can re-read their snapshot.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RemoteStore backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Subscribe opens a live mirror of the node at p. The pub/sub subscription is
// confirmed before the initial snapshot is read, so no write between the two
// can be missed.
func (s *RedisStore) Subscribe(ctx context.Context, p string, onChange func(json.RawMessage), onError func(error)) (adapter.Unsubscribe, error) {
	pubsub := s.client.Subscribe(ctx, channelPrefix+p)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, fmt.Sprintf("subscribe %s", p), err)
	}

	snapshot, err := s.GetOnce(ctx, p)
	if err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	onChange(snapshot)

	subCtx, cancel := context.WithCancel(context.Background())
	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				snapshot, err := s.GetOnce(subCtx, p)
				if err != nil {
					if onError != nil && subCtx.Err() == nil {
						onError(err)
					}
					continue
				}
				onChange(snapshot)
			}
		}
	}()

	unsubscribe := func() {
		cancel()
		_ = pubsub.Close()
	}
	return unsubscribe, nil
}

// GetOnce reads the node at p: the whole hash for a collection, a single hash
// field for a leaf, (nil, nil) when absent.
func (s *RedisStore) GetOnce(ctx context.Context, p string) (json.RawMessage, error) {
	records, err := s.client.HGetAll(ctx, p).Result()
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, fmt.Sprintf("read %s", p), err)
	}
	if len(records) > 0 {
		raw := make(map[string]json.RawMessage, len(records))
		for id, value := range records {
			raw[id] = json.RawMessage(value)
		}
		return encodeCollection(raw), nil
	}

	dir, base := path.Dir(p), path.Base(p)
	value, err := s.client.HGet(ctx, dir, base).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, fmt.Sprintf("read %s", p), err)
	}
	return json.RawMessage(value), nil
}

// Set overwrites the record at p.
func (s *RedisStore) Set(ctx context.Context, p string, value any) error {
	return s.Update(ctx, map[string]any{p: value})
}

// Update applies a batched multi-path write in one transactional pipeline.
// A nil value deletes that path.
func (s *RedisStore) Update(ctx context.Context, values map[string]any) error {
	pipe := s.client.TxPipeline()
	touched := make(map[string]struct{})
	for p, value := range values {
		dir, base := path.Dir(p), path.Base(p)
		if value == nil {
			pipe.HDel(ctx, dir, base)
		} else {
			raw, err := json.Marshal(value)
			if err != nil {
				return domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, fmt.Sprintf("marshal value for %s", p), err)
			}
			pipe.HSet(ctx, dir, base, string(raw))
		}
		touched[dir] = struct{}{}
		touched[p] = struct{}{}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "multi-path update", err)
	}

	s.publish(ctx, touched)
	return nil
}

// Remove deletes the node at p, subtree included.
func (s *RedisStore) Remove(ctx context.Context, p string) error {
	touched := map[string]struct{}{p: {}}

	exists, err := s.client.Exists(ctx, p).Result()
	if err != nil {
		return domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, fmt.Sprintf("remove %s", p), err)
	}
	if exists > 0 {
		if err := s.client.Del(ctx, p).Err(); err != nil {
			return domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, fmt.Sprintf("remove %s", p), err)
		}
	} else {
		dir, base := path.Dir(p), path.Base(p)
		if err := s.client.HDel(ctx, dir, base).Err(); err != nil {
			return domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, fmt.Sprintf("remove %s", p), err)
		}
		touched[dir] = struct{}{}
	}

	s.publish(ctx, touched)
	return nil
}

// QueryEqual scans the collection at p for records whose top-level field
// equals value. Collections are per-user and small; a full hash scan matches
// the access pattern.
func (s *RedisStore) QueryEqual(ctx context.Context, p, field, value string) (map[string]json.RawMessage, error) {
	records, err := s.client.HGetAll(ctx, p).Result()
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, fmt.Sprintf("query %s", p), err)
	}

	matches := make(map[string]json.RawMessage)
	for id, raw := range records {
		if recordFieldEquals(json.RawMessage(raw), field, value) {
			matches[id] = json.RawMessage(raw)
		}
	}
	return matches, nil
}

// publish notifies subscribers of every touched path after a commit.
func (s *RedisStore) publish(ctx context.Context, touched map[string]struct{}) {
	for p := range touched {
		s.client.Publish(ctx, channelPrefix+p, "changed")
	}
}
