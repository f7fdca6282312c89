// Package contract provides interfaces and shared utilities for soccerboard's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/soccerboard/schema"
)

// MatchSource retrieves the raw match history feed.
// This allows the loading logic to be tested without network access.
type MatchSource interface {
	// Fetch returns the raw bytes stored at location (URL or local path).
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetFeedStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
