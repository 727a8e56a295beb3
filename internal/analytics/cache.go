package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
)

const (
	cacheVersionKey = "ekohajj:analytics:version"
	// BumpChannel carries version bumps between the web and worker processes.
	BumpChannel = "ekohajj.records.bump"
)

// Cache memoises aggregation results in Redis under versioned keys. A nil
// Cache, or one without a client, runs the loader on every call.
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	onFetch func(hit bool)
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl, logger: slog.Default()}
}

// WithLogger sets the logger used for invalidation failures.
func (c *Cache) WithLogger(logger *slog.Logger) *Cache {
	if c != nil && logger != nil {
		c.logger = logger
	}
	return c
}

// OnLookup registers fn to observe every cache hit or miss.
func (c *Cache) OnLookup(fn func(hit bool)) *Cache {
	if c != nil {
		c.onFetch = fn
	}
	return c
}

func (c *Cache) observe(hit bool) {
	if c.onFetch != nil {
		c.onFetch(hit)
	}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the cache generation, creating it on first use.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		ok, err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Result()
		if err != nil {
			return 0, fmt.Errorf("init cache version: %w", err)
		}
		if !ok {
			return c.client.Get(ctx, cacheVersionKey).Int64()
		}
		return 1, nil
	case err != nil:
		return 0, fmt.Errorf("read cache version: %w", err)
	case ver <= 0:
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, fmt.Errorf("reset cache version: %w", err)
		}
		return 1, nil
	}
	return ver, nil
}

// BuildKey appends the cache generation to the joined key parts.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if !c.enabled() {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return joined + ":v" + strconv.FormatInt(ver, 10), nil
}

// FetchJSON decodes the cached value under key into dest, running loader and
// storing its result on a miss.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c.enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			c.observe(true)
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			return fmt.Errorf("cache get %s: %w", key, err)
		}
		c.observe(false)
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.enabled() {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return fmt.Errorf("cache set %s: %w", key, err)
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump starts a new cache generation and announces it on BumpChannel.
func (c *Cache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	ver, err := c.client.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("bump cache version: %w", err)
	}
	return c.client.Publish(ctx, BumpChannel, strconv.FormatInt(ver, 10)).Err()
}

// Invalidate is a store change listener that bumps the generation.
func (c *Cache) Invalidate(ctx context.Context, ch monitoring.Change) {
	if err := c.Bump(context.WithoutCancel(ctx)); err != nil && c.logger != nil {
		c.logger.Warn("analytics cache bump failed",
			slog.String("collection", string(ch.Collection)),
			slog.String("op", ch.Op),
			slog.Any("error", err))
	}
}

// ListenForInvalidation follows version bumps published by other processes
// until ctx is done.
func (c *Cache) ListenForInvalidation(ctx context.Context, channel string) error {
	if !c.enabled() {
		return nil
	}
	if channel == "" {
		channel = BumpChannel
	}
	pubsub := c.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				ver, err := strconv.ParseInt(msg.Payload, 10, 64)
				if err != nil {
					_ = c.client.Incr(ctx, cacheVersionKey).Err()
					continue
				}
				current, _ := c.client.Get(ctx, cacheVersionKey).Int64()
				if ver > current {
					_ = c.client.Set(ctx, cacheVersionKey, ver, 0).Err()
				}
			}
		}
	}()
	return nil
}
