package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/internal/iocache"
	"github.com/huangsam/soccerboard/internal/outwriter"
	"github.com/huangsam/soccerboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheBackendFromViper reads and validates the cache backend settings only.
func cacheBackendFromViper() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	backend, connStr, err := cacheBackendFromViper()
	if err != nil {
		return err
	}

	if err := iocache.InitCaching(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheMigrateSetupWrapper loads the backend without opening the store,
// so migrations can run against a fresh or rolled back database.
func cacheMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	backend, connStr, err := cacheBackendFromViper()
	if err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization instead of the full
// sharedSetup, so they never fetch the feed.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the match feed cache",
	Long: `Manage the cache that keeps the downloaded match feed between runs.

Soccerboard stores the parsed feed so repeated commands within --cache-ttl
skip the download.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Move the cache schema to a given version

Examples:
  soccerboard cache status
  soccerboard cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached feed data",
	Long: `Delete all cached feed data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache and migration tables

Examples:
  soccerboard cache clear
  SOCCERBOARD_CACHE_BACKEND=mysql SOCCERBOARD_CACHE_DB_CONNECT="..." soccerboard cache clear`,
	PreRunE: cacheMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, iocache.GetDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the cache backend, schema version, entry count, entry age and size.

Examples:
  soccerboard cache status
  soccerboard cache status --output json`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.GetCacheStatus(cfg.CacheBackend)
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		if err := outwriter.NewOutWriter().WriteCacheStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print cache status", err)
		}
	},
}

// cacheMigrateCmd runs schema migrations for the cache store.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run cache schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the feed cache.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  soccerboard cache migrate

  # Rollback everything
  soccerboard cache migrate --target-version 0`,
	PreRunE: cacheMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if current, dirty, err := iocache.GetCacheSchemaVersion(cfg.CacheBackend, cfg.CacheDBConnect); err == nil {
			fmt.Printf("Current schema version: %d (dirty: %t)\n", current, dirty)
		}
		if err := iocache.MigrateCache(cfg.CacheBackend, cfg.CacheDBConnect, targetVersion, os.Stdout); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
