package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	recordsKeyPrefix  = "ekohajj:records:"
	recordsVersionKey = "ekohajj:records_version"
)

// RedisRepository stores each collection as one JSON array.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository builds a repository on top of client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func recordsKey(c Collection) string {
	return recordsKeyPrefix + string(c)
}

// Load decodes the stored collection. A missing key is an empty collection.
func (r *RedisRepository) Load(ctx context.Context, c Collection) ([]Record, error) {
	if !c.Valid() {
		return nil, ErrUnknownCollection
	}
	payload, err := r.client.Get(ctx, recordsKey(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c, err)
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		rec := NewRecord(c.Kind())
		if err := json.Unmarshal(raw, rec); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", c, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Save overwrites the collection document.
func (r *RedisRepository) Save(ctx context.Context, c Collection, records []Record) error {
	if !c.Valid() {
		return ErrUnknownCollection
	}
	if records == nil {
		records = []Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := r.client.Set(ctx, recordsKey(c), payload, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", c, err)
	}
	return nil
}

// Version reads the shared mutation counter. A missing key is version 0.
func (r *RedisRepository) Version(ctx context.Context) (int64, error) {
	ver, err := r.client.Get(ctx, recordsVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read records version: %w", err)
	}
	return ver, nil
}

// BumpVersion increments the shared mutation counter.
func (r *RedisRepository) BumpVersion(ctx context.Context) (int64, error) {
	ver, err := r.client.Incr(ctx, recordsVersionKey).Result()
	if err != nil {
		return 0, fmt.Errorf("bump records version: %w", err)
	}
	return ver, nil
}
