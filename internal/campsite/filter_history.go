package campsite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FilterHistoryTTL is how long the last used filters are remembered.
const FilterHistoryTTL = 30 * time.Minute

// FilterHistory remembers the last filter parameters a user searched with.
type FilterHistory interface {
	Save(ctx context.Context, userID string, params FilterParams) error
	// Last returns nil when nothing is remembered.
	Last(ctx context.Context, userID string) (*FilterParams, error)
}

type redisFilterHistory struct {
	rdb *redis.Client
}

// NewRedisFilterHistory stores filter history in Redis.
func NewRedisFilterHistory(rdb *redis.Client) FilterHistory {
	return &redisFilterHistory{rdb: rdb}
}

func filterHistoryKey(userID string) string {
	return "last_filters:" + userID
}

func (h *redisFilterHistory) Save(ctx context.Context, userID string, params FilterParams) error {
	b, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode filter history failed: %w", err)
	}
	return h.rdb.Set(ctx, filterHistoryKey(userID), b, FilterHistoryTTL).Err()
}

func (h *redisFilterHistory) Last(ctx context.Context, userID string) (*FilterParams, error) {
	val, err := h.rdb.Get(ctx, filterHistoryKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read filter history failed: %w", err)
	}

	var params FilterParams
	if err := json.Unmarshal(val, &params); err != nil {
		return nil, fmt.Errorf("decode filter history failed: %w", err)
	}
	return &params, nil
}

// NopFilterHistory is used when no Redis is configured.
type NopFilterHistory struct{}

func (NopFilterHistory) Save(context.Context, string, FilterParams) error { return nil }

func (NopFilterHistory) Last(context.Context, string) (*FilterParams, error) { return nil, nil }
