package history

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// DefaultRedisKey matches the key the browser calculator keeps its history under.
const DefaultRedisKey = "sip_history"

// RedisStore keeps the list as one JSON array value under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to addr and verifies the connection with PING.
func NewRedisStore(ctx context.Context, addr, key string) (*RedisStore, error) {
	if key == "" {
		key = DefaultRedisKey
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisStore{client: rdb, key: key}, nil
}

func (r *RedisStore) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(val, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return entries, nil
}

func (r *RedisStore) Save(ctx context.Context, entries []domain.HistoryEntry) error {
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
