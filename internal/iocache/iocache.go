// Package iocache is for caching the fetched match feed.
package iocache

import (
	"sync"

	"github.com/huangsam/soccerboard/internal/contract"
)

// CacheStoreManager manages the CacheStore instances used at runtime.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	feed         contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetFeedStore returns the feed CacheStore.
func (mgr *CacheStoreManager) GetFeedStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.feed
}

// NewCacheStoreManager wraps an existing store, mainly for tests and embedding.
func NewCacheStoreManager(feed contract.CacheStore) *CacheStoreManager {
	return &CacheStoreManager{feed: feed}
}
