package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list key used when none is configured.
const DefaultRedisKey = "palette:recent-searches"

// addAttempts bounds optimistic retries when another writer changes the list during Add.
const addAttempts = 10

// RedisStore keeps recent searches in a Redis list, most recent at the head.
// Each element is a JSON-encoded RecentSearch; duplicates are matched on the query text.
type RedisStore struct {
	client *redis.Client
	key    string
	max    int
}

// NewRedisStore creates a store on the Redis server at addr.
func NewRedisStore(addr string, db int, key string, limit int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, max: maxOrDefault(limit)}
}

// Add records query at the head, removing an earlier identical entry and trimming to max.
// The list is watched while it is rewritten, so concurrent writers cannot leave duplicates.
func (s *RedisStore) Add(ctx context.Context, query string) error {
	query = normalizeQuery(query)
	if query == "" {
		return nil
	}
	entry, err := json.Marshal(RecentSearch{ID: uuid.New().String(), Query: query, CreatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	txf := func(tx *redis.Tx) error {
		existing, err := s.list(ctx, tx, -1)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, e := range existing {
				if e.recent.Query == query {
					pipe.LRem(ctx, s.key, 0, e.raw)
				}
			}
			pipe.LPush(ctx, s.key, entry)
			pipe.LTrim(ctx, s.key, 0, int64(s.max-1))
			return nil
		})
		return err
	}
	for i := 0; i < addAttempts; i++ {
		err = s.client.Watch(ctx, txf, s.key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("failed to add recent search: %w", err)
	}
	return nil
}

// List returns entries most recent first.
func (s *RedisStore) List(ctx context.Context) ([]RecentSearch, error) {
	entries, err := s.list(ctx, s.client, int64(s.max-1))
	if err != nil {
		return nil, err
	}
	out := make([]RecentSearch, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.recent)
	}
	return out, nil
}

type redisEntry struct {
	raw    string
	recent RecentSearch
}

// lranger is satisfied by *redis.Client and by *redis.Tx inside a watched transaction.
type lranger interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

func (s *RedisStore) list(ctx context.Context, r lranger, stop int64) ([]redisEntry, error) {
	values, err := r.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent searches: %w", err)
	}
	out := make([]redisEntry, 0, len(values))
	for _, v := range values {
		var r RecentSearch
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			continue
		}
		out = append(out, redisEntry{raw: v, recent: r})
	}
	return out, nil
}

// Clear removes the list.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
