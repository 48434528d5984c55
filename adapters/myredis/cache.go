package myredis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nasa/vsm/helpers"
	"github.com/nasa/vsm/service"

	"github.com/go-redis/redis/v8"
)

// scanBatch is the COUNT hint of one SCAN call.
const scanBatch = 100

type redisCache[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
}

// NewCache creates the redis implementation of interfaces.Cache. Keys are stored as "<prefix>:<key>".
// Panics on nil client or codec funcs and on an empty prefix.
//
// Called from cmd/main with prefix "vsm:node" and JSON codecs for domain.NodeStatus.
func NewCache[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *redisCache[T] {
	return &redisCache[T]{
		client:    helpers.NilPanic(client, "adapters.myredis.cache.go: client is required"),
		prefix:    helpers.StrPanic(prefix, "adapters.myredis.cache.go: prefix is required"),
		marshal:   helpers.NilPanic(marshal, "adapters.myredis.cache.go: marshal is required"),
		unmarshal: helpers.NilPanic(unmarshal, "adapters.myredis.cache.go: unmarshal is required"),
	}
}

// NewJSONCache is NewCache with encoding/json codecs.
func NewJSONCache[T any](client redis.UniversalClient, prefix string) *redisCache[T] {
	return NewCache[T](client, prefix,
		func(item T) ([]byte, error) { return json.Marshal(item) },
		func(b []byte) (T, error) {
			var item T
			err := json.Unmarshal(b, &item)
			return item, err
		},
	)
}

func (r *redisCache[T]) WriteValue(ctx context.Context, key string, item T, ttlMs int) error {
	bytes, err := r.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	err = r.client.Set(ctx, r.generateKey(key), bytes, time.Duration(ttlMs)*time.Millisecond).Err()
	if err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write %s to redis: %w", r.generateKey(key), err))
	}

	return nil
}

func (r *redisCache[T]) DeleteValue(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.generateKey(key)).Err(); err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete %s from redis: %w", r.generateKey(key), err))
	}
	return nil
}

// ListAllValues scans the keys under the prefix and fetches them with one MGET.
// Keys that expire between the scan and the fetch, and values that do not unmarshal, are skipped.
func (r *redisCache[T]) ListAllValues(ctx context.Context) ([]T, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		if strings.HasPrefix(iter.Val(), r.prefix+":") {
			keys = append(keys, iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return nil, service.NewInternalServerError("Redis scan keys error", fmt.Errorf("redis scan %s:* error: %w", r.prefix, err))
	}
	if len(keys) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis get values error", fmt.Errorf("redis mget error: %w", err))
	}

	items := make([]T, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		item, err := r.unmarshal([]byte(s))
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}

	return items, nil
}

func (r *redisCache[T]) generateKey(key string) string {
	return r.prefix + ":" + key
}
