package iocache

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/soccerboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore creates a migrated SQLite store in a temp directory.
func newSQLiteStore(t *testing.T) (*CacheStoreImpl, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err, "Failed to create SQLite store")
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*CacheStoreImpl)
	require.True(t, ok)
	return impl, dbPath
}

// resetGlobals lets each subtest run the once-guarded init again.
func resetGlobals() {
	Manager = &CacheStoreManager{}
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
}

func TestCaching(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		resetGlobals()
		dbPath := filepath.Join(t.TempDir(), "cache.db")

		err := InitCaching(schema.SQLiteBackend, dbPath)
		assert.NoError(t, err, "Failed to initialize caching")
		assert.NotNil(t, Manager.GetFeedStore(), "Feed store should not be nil")

		CloseCaching()

		_, err = os.Stat(dbPath)
		assert.False(t, os.IsNotExist(err), "Database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals()
		dbPath := filepath.Join(t.TempDir(), "cache.db")

		// Multiple initializations should be safe (sync.Once)
		assert.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))
		assert.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))
		assert.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))

		// Multiple closes should be safe (sync.Once)
		CloseCaching()
		CloseCaching()
	})

	t.Run("none backend", func(t *testing.T) {
		resetGlobals()

		err := InitCaching(schema.NoneBackend, "")
		assert.NoError(t, err)
		assert.NotNil(t, Manager.GetFeedStore(), "Feed store should not be nil")

		status, err := GetCacheStatus(schema.NoneBackend)
		assert.NoError(t, err)
		assert.Equal(t, "none", status.Backend)
		assert.False(t, status.Connected)

		CloseCaching()
	})

	t.Run("empty backend leaves manager unset", func(t *testing.T) {
		resetGlobals()

		assert.NoError(t, InitCaching("", ""))
		assert.Nil(t, Manager.GetFeedStore())

		status, err := GetCacheStatus(schema.SQLiteBackend)
		assert.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.False(t, status.Connected)
	})

	t.Run("unsupported backend", func(t *testing.T) {
		resetGlobals()

		err := InitCaching(schema.DatabaseBackend("oracle"), "")
		assert.Error(t, err)
		assert.Nil(t, Manager.GetFeedStore())
	})

	t.Run("none backend operations", func(t *testing.T) {
		store, err := NewCacheStore(schema.NoneBackend, "")
		require.NoError(t, err)

		_, _, _, err = store.Get("test_key")
		assert.ErrorIs(t, err, sql.ErrNoRows, "Get on none backend should miss")

		assert.NoError(t, store.Set("test_key", []byte("test_value"), 1, 123456789))

		_, _, _, err = store.Get("test_key")
		assert.ErrorIs(t, err, sql.ErrNoRows, "Set on none backend is a no-op")

		assert.NoError(t, store.Close())
	})
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"feed table", feedTable, false},
		{"migrations table", migrationsTable, false},
		{"valid name with numbers", "feed_cache_2", false},
		{"valid name starting with underscore", "_feed", false},
		{"valid mixed case", "FeedCache", false},
		{"empty name", "", true},
		{"starts with number", "2_feed", true},
		{"contains dash", "feed-cache", true},
		{"contains space", "feed cache", true},
		{"contains dot", "db.feed", true},
		{"sql injection attempt", "feed'; DROP TABLE users; --", true},
		{"too long", "t" + string(bytes.Repeat([]byte("x"), 64)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
			} else {
				assert.NoError(t, err, "validateTableName should not error for %q", tt.tableName)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, `"feed_cache"`},
		{schema.MySQLBackend, "`feed_cache`"},
		{schema.PostgreSQLBackend, `"feed_cache"`},
		{schema.NoneBackend, `"feed_cache"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.want, quoteTableName(feedTable, tt.backend))
		})
	}
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
		wantErr bool
	}{
		{schema.SQLiteBackend, "sqlite", false},
		{schema.MySQLBackend, "mysql", false},
		{schema.PostgreSQLBackend, "pgx", false},
		{schema.NoneBackend, "", true},
		{schema.DatabaseBackend("redis"), "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			got, err := driverName(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLiteBackendOperations(t *testing.T) {
	t.Run("set and get operations", func(t *testing.T) {
		store, _ := newSQLiteStore(t)

		err := store.Set("feed_key", []byte("feed_value"), 1, int64(1234567890))
		assert.NoError(t, err, "Set should not fail")

		value, version, timestamp, err := store.Get("feed_key")
		assert.NoError(t, err, "Get should not fail")
		assert.Equal(t, "feed_value", string(value))
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1234567890), timestamp)
	})

	t.Run("upsert behavior", func(t *testing.T) {
		store, _ := newSQLiteStore(t)

		assert.NoError(t, store.Set("upsert_key", []byte("initial_value"), 1, 1000))
		assert.NoError(t, store.Set("upsert_key", []byte("updated_value"), 2, 2000))

		value, version, timestamp, err := store.Get("upsert_key")
		assert.NoError(t, err)
		assert.Equal(t, "updated_value", string(value))
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), timestamp)
	})

	t.Run("get non-existent key", func(t *testing.T) {
		store, _ := newSQLiteStore(t)

		_, _, _, err := store.Get("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("status", func(t *testing.T) {
		store, _ := newSQLiteStore(t)

		status, err := store.GetStatus()
		assert.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 0, status.TotalEntries)
		assert.Equal(t, uint(2), status.SchemaVersion)
		assert.False(t, status.SchemaDirty)

		assert.NoError(t, store.Set("a", []byte("1"), 1, 1000))
		assert.NoError(t, store.Set("b", []byte("2"), 1, 3000))

		status, err = store.GetStatus()
		assert.NoError(t, err)
		assert.Equal(t, 2, status.TotalEntries)
		assert.Equal(t, int64(3000), status.LastEntryTime.Unix())
		assert.Equal(t, int64(1000), status.OldestEntryTime.Unix())
		assert.Positive(t, status.TableSizeBytes)
	})

	t.Run("reopen keeps data", func(t *testing.T) {
		store, dbPath := newSQLiteStore(t)
		assert.NoError(t, store.Set("persisted", []byte("yes"), 1, 42))
		assert.NoError(t, store.Close())

		reopened, err := NewCacheStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		defer func() { _ = reopened.Close() }()

		value, _, ts, err := reopened.Get("persisted")
		assert.NoError(t, err)
		assert.Equal(t, "yes", string(value))
		assert.Equal(t, int64(42), ts)
	})
}

func TestGetPlaceholder(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, "?"},
		{schema.MySQLBackend, "?"},
		{schema.PostgreSQLBackend, "$1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{backend: tt.backend}
			assert.Equal(t, tt.want, store.getPlaceholder())
		})
	}
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{schema.SQLiteBackend, []string{"INSERT OR REPLACE", `"feed_cache"`}},
		{schema.MySQLBackend, []string{"ON DUPLICATE KEY UPDATE", "`feed_cache`", "AS new"}},
		{schema.PostgreSQLBackend, []string{"ON CONFLICT (cache_key)", "EXCLUDED.cache_value", "$4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{backend: tt.backend, tableName: feedTable}
			query := store.getUpsertQuery()
			for _, want := range tt.wantContains {
				assert.Contains(t, query, want)
			}
		})
	}
}

func TestMigrateCache(t *testing.T) {
	t.Run("none backend rejected", func(t *testing.T) {
		assert.Error(t, MigrateCache(schema.NoneBackend, "", -1, nil))
	})

	t.Run("down then up", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "migrate.db")
		var out bytes.Buffer

		require.NoError(t, MigrateCache(schema.SQLiteBackend, dbPath, -1, &out))
		assert.Contains(t, out.String(), "to version 2")

		out.Reset()
		require.NoError(t, MigrateCache(schema.SQLiteBackend, dbPath, -1, &out))
		assert.Contains(t, out.String(), "already at the latest version")

		out.Reset()
		require.NoError(t, MigrateCache(schema.SQLiteBackend, dbPath, 1, &out))
		assert.Contains(t, out.String(), "to version 1")

		out.Reset()
		require.NoError(t, MigrateCache(schema.SQLiteBackend, dbPath, 0, &out))
		assert.Contains(t, out.String(), "rolled back")

		db, err := openDB(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", feedTable).Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 0, count, "feed table should be dropped after full rollback")
	})
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		store, dbPath := newSQLiteStore(t)
		assert.NoError(t, store.Close())

		assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		// Clearing twice is fine
		assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("sqlite requires path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none backend", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.DatabaseBackend("oracle"), "", ""))
	})
}

func TestGetCacheSchemaVersion(t *testing.T) {
	_, dbPath := newSQLiteStore(t)

	version, dirty, err := GetCacheSchemaVersion(schema.SQLiteBackend, dbPath)
	assert.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	version, _, err = GetCacheSchemaVersion(schema.NoneBackend, "")
	assert.NoError(t, err)
	assert.Zero(t, version)
}
