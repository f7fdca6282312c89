package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/internal/feed"
	"github.com/huangsam/soccerboard/schema"
)

// currentCacheVersion defines the version of the cached record encoding
const currentCacheVersion = 1

// LoadMatches returns the parsed match records for cfg.Source, going through the
// feed cache when one is configured. The boolean reports a cache hit.
// Cache problems never fail the load; they only cost a refetch.
func LoadMatches(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, src contract.MatchSource) ([]schema.MatchRecord, bool, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetFeedStore()
	}
	if store == nil {
		// Fallback to direct fetch
		records, err := fetchMatches(ctx, cfg, src)
		return records, false, err
	}

	key := generateCacheKey(cfg)

	// Check for cache hit
	if records, ok := checkCacheHit(store, key, cfg.CacheTTL, time.Now()); ok {
		return records, true, nil
	}

	// Cache miss: fetch and store
	records, err := fetchAndStore(ctx, cfg, src, store, key)
	return records, false, err
}

// fetchMatches downloads and parses the feed.
func fetchMatches(ctx context.Context, cfg *contract.Config, src contract.MatchSource) ([]schema.MatchRecord, error) {
	data, err := src.Fetch(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	records, err := feed.ParseCSVBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return records, nil
}

// checkCacheHit attempts to retrieve and validate a cached feed
func checkCacheHit(store contract.CacheStore, key string, ttl time.Duration, now time.Time) ([]schema.MatchRecord, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || now.Sub(time.Unix(ts, 0)) > ttl {
		return nil, false
	}

	var records []schema.MatchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

// fetchAndStore fetches the feed and stores the parsed records in cache
func fetchAndStore(ctx context.Context, cfg *contract.Config, src contract.MatchSource, store contract.CacheStore, key string) ([]schema.MatchRecord, error) {
	records, err := fetchMatches(ctx, cfg, src)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(records)
	if err != nil {
		contract.LogWarn("Failed to encode feed for cache", err)
		return records, nil
	}
	if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Failed to store feed in cache", err)
	}
	return records, nil
}

// generateCacheKey creates a unique key for the configured feed location
func generateCacheKey(cfg *contract.Config) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte("feed:"+cfg.Source)))
}
