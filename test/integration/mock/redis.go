// Package mock provides shared test doubles for the integration suite.
package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisConnOnce sync.Once
	redisConn     *redis.Client
)

// NewRedis returns a client bound to a process-wide miniredis instance.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		miniRedis, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{
			Addr: miniRedis.Addr(),
		})
	})
	return redisConn
}

// ClearRedis wipes all keys between scenarios.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
