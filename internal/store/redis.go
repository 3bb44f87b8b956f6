package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces keys written by Redis
const DefaultRedisPrefix = "workoutmap:"

// Redis is a KV backed by a Redis server
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures ConnectRedis
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// ConnectRedis creates a Redis KV and verifies the server is reachable
func ConnectRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}

	return NewRedis(client, opts.Prefix), nil
}

// NewRedis wraps an existing client. An empty prefix uses DefaultRedisPrefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Save stores value under key with no expiry
func (r *Redis) Save(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}

// Load retrieves the value stored under key
func (r *Redis) Load(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading %q: %w", key, err)
	}
	return value, true, nil
}

// Remove deletes key
func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client
func (r *Redis) Close() error {
	return r.client.Close()
}
