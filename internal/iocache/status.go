package iocache

import (
	"github.com/huangsam/soccerboard/schema"
)

// GetCacheStatus reports on the global feed store, or a disconnected status when none is configured.
func GetCacheStatus(backend schema.DatabaseBackend) (schema.CacheStatus, error) {
	store := Manager.GetFeedStore()
	if store == nil {
		return schema.CacheStatus{Backend: string(backend)}, nil
	}
	return store.GetStatus()
}
