// Package cache holds the derived-read cache used by the rating
// service. Entries are invalidated by whole-key removal on every
// mutation, never updated in place, so a cached value is always
// derivable from the committed store state.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is the cache backend. Get returns (nil, false, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Key builders for rating-derived entries.

func UserGameRatingKey(userID string, gameID int64) string {
	return fmt.Sprintf("rating:user:%s:game:%d", userID, gameID)
}

func UserRatingsPageKey(userID string, page, pageSize int) string {
	return fmt.Sprintf("ratings:user:%s:page:%d:%d", userID, page, pageSize)
}

func GameRatingsPageKey(gameID int64, page, pageSize int) string {
	return fmt.Sprintf("ratings:game:%d:page:%d:%d", gameID, page, pageSize)
}

func GameAverageKey(gameID int64) string {
	return fmt.Sprintf("avg:game:%d", gameID)
}

// Prefixes used for invalidation sweeps.

func UserPrefix(userID string) []string {
	return []string{
		fmt.Sprintf("rating:user:%s:", userID),
		fmt.Sprintf("ratings:user:%s:", userID),
	}
}

func GamePrefix(gameID int64) []string {
	return []string{
		fmt.Sprintf("ratings:game:%d:", gameID),
		fmt.Sprintf("avg:game:%d", gameID),
	}
}
