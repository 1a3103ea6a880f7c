package store

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "taskboard:"

type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV wraps an existing client. Keys are namespaced under prefix.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func OpenRedisKV(ctx context.Context, url string) (*RedisKV, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("redis storage needs a redis url")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisKV(client, DefaultRedisPrefix), nil
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, val []byte) error {
	return r.client.Set(ctx, r.prefix+key, val, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
