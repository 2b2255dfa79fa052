package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix     = "maze"
	defaultLockExpiry = 10 * time.Second

	mazeKeyFmt = "%s:record:%s"
	lockKeyFmt = "%s:lock:%s"
)

// RedisMazeCache stores encoded maze records in Redis with a TTL and hands out
// redsync mutexes so only one instance materialises a procedural maze at a time.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) *RedisMazeCache {
	pool := goredis.NewPool(client)
	return &RedisMazeCache{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
		prefix: defaultPrefix,
	}
}

// Get returns the cached record or maze.ErrNotFound on a miss.
func (c *RedisMazeCache) Get(ctx context.Context, id uuid.UUID) (*maze.Record, error) {
	data, err := c.client.Get(ctx, c.mazeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, maze.ErrNotFound
		}
		return nil, fmt.Errorf("reading cached maze: %w", err)
	}

	var record maze.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding cached maze: %w", err)
	}
	return &record, nil
}

// Set caches the record until the TTL expires.
func (c *RedisMazeCache) Set(ctx context.Context, record *maze.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding maze: %w", err)
	}
	return c.client.Set(ctx, c.mazeKey(record.ID), data, c.ttl).Err()
}

// Delete evicts a record.
func (c *RedisMazeCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, c.mazeKey(id)).Err()
}

// Lock acquires the distributed mutex for key.
func (c *RedisMazeCache) Lock(ctx context.Context, key string) (func() error, error) {
	mutex := c.locker.NewMutex(c.lockKey(key), redsync.WithExpiry(defaultLockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", key, err)
	}

	return func() error {
		_, err := mutex.Unlock()
		return err
	}, nil
}

func (c *RedisMazeCache) mazeKey(id uuid.UUID) string {
	return fmt.Sprintf(mazeKeyFmt, c.prefix, id)
}

func (c *RedisMazeCache) lockKey(key string) string {
	return fmt.Sprintf(lockKeyFmt, c.prefix, key)
}
