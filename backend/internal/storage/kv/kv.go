// Package kv is the Redis list store behind every collection.
package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/itchan-dev/kvboard/shared/config"
	"github.com/itchan-dev/kvboard/shared/errors"
	"github.com/itchan-dev/kvboard/shared/logger"
)

const (
	connectTimeout = 5 * time.Second
	defaultLockTTL = 8 * time.Second
)

var storeErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kvboard_store_errors_total",
		Help: "Total number of failed list store commands",
	},
	[]string{"op"},
)

// Storage implements push/range/delete primitives over Redis lists.
// Every command runs under its own timeout derived from the caller's context.
type Storage struct {
	client    *redis.Client
	rs        *redsync.Redsync
	opTimeout time.Duration
	lockTTL   time.Duration
}

// New connects to cfg.RedisURL() and checks the connection.
func New(cfg *config.Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.RedisURL())
	if err != nil {
		// the url may carry a password, so do not echo it back
		return nil, fmt.Errorf("parse redis url: invalid format")
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client, cfg.Public.Store), nil
}

// NewWithClient creates a store from an existing Redis client
func NewWithClient(client *redis.Client, cfg config.Store) *Storage {
	return &Storage{
		client:    client,
		rs:        redsync.New(goredis.NewPool(client)),
		opTimeout: cfg.OpTimeout,
		lockTTL:   cfg.LockTTL,
	}
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func fail(op string, err error) error {
	storeErrorsTotal.WithLabelValues(op).Inc()
	return &errors.StoreError{Op: op, Err: err}
}

// PushHead prepends values; with several values the last one ends up first.
func (s *Storage) PushHead(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.LPush(ctx, key, toArgs(values)...).Err(); err != nil {
		return fail("lpush", err)
	}
	return nil
}

// Range returns elements start..stop inclusive; 0, -1 is the whole list.
// A missing key is an empty list.
func (s *Storage) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	values, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fail("lrange", err)
	}
	return values, nil
}

func (s *Storage) Len(ctx context.Context, key string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, fail("llen", err)
	}
	return n, nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fail("del", err)
	}
	return nil
}

// Replace swaps the list content for values in one MULTI/EXEC.
// It does not guard against writes that happened since the caller read the list.
func (s *Storage) Replace(ctx context.Context, key string, values []string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.RPush(ctx, key, toArgs(values)...)
		}
		return nil
	})
	if err != nil {
		return fail("replace", err)
	}
	return nil
}

// WithLock runs fn while holding a redsync mutex named after key.
func (s *Storage) WithLock(ctx context.Context, key string, fn func() error) error {
	ttl := s.lockTTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	mutex := s.rs.NewMutex("kvboard:lock:"+key, redsync.WithExpiry(ttl))

	if err := mutex.LockContext(ctx); err != nil {
		return fail("lock", err)
	}
	defer func() {
		// the lock expires after ttl anyway
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			storeErrorsTotal.WithLabelValues("unlock").Inc()
			logger.Log.Warn("failed to release list lock", "key", key, "error", err)
		}
	}()

	return fn()
}

// Ping checks if Redis is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Storage) Cleanup() error {
	return s.client.Close()
}

func toArgs(values []string) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
