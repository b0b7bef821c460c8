package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// Redis is a Port backed by a Redis instance, for kiosk-style deployments
// where several storefront processes share one cart/session state.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis wraps an existing client. All keys are namespaced under prefix
// (default "reservat:") so the store can share a database with other users.
func NewRedis(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "reservat:"
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.prefix+key).Err()
}
