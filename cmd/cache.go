package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/iocache"
	"github.com/streampulse/pulse/schema"
)

// loadCacheConfig reads and validates the cache backend settings only.
func loadCacheConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'", backend)
	}
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadCacheConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheMigrateSetupWrapper loads cache config without opening the store,
// so migrations can run against a fresh database.
func cacheMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := loadCacheConfig(); err != nil {
		return err
	}
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.CacheDBConnect == "" {
		cfg.CacheDBConnect = contract.GetCacheDBFilePath()
	}
	return nil
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup. This skips upstream and output validation for simple
// cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the upstream response cache",
	Long: `Manage the cache of upstream API responses.

Pulse caches dashboard responses for --cache-ttl so repeated runs and polling
do not hit the API every time.

Supported backends: SQLite (default), MySQL, PostgreSQL, Redis, or None

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached responses
  migrate - Run schema migrations for the SQL backends`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	Long: `Delete all cached responses from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table
For Redis: Deletes every pulse cache key

Examples:
  pulse cache clear
  PULSE_CACHE_BACKEND=redis PULSE_CACHE_DB_CONNECT=redis://localhost:6379/0 pulse cache clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadCacheConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, connection state, entry count, entry age range and size of the cache.

Examples:
  pulse cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetResponseStore()
		if store == nil {
			iocache.WriteCacheStatus(os.Stdout, schema.CacheStatus{Backend: string(cfg.CacheBackend)})
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.WriteCacheStatus(os.Stdout, status)
	},
}

// cacheMigrateCmd runs cache schema migrations.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run cache schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the SQL cache backends.

By default, migrates to the latest version. Use --target-version for specific versions.
Redis and none have no schema and are rejected.

Examples:
  # Migrate to latest version (default)
  pulse cache migrate

  # Roll back to the initial state
  pulse cache migrate --target-version 0`,
	PreRunE: cacheMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateCache(os.Stdout, cfg.CacheBackend, cfg.CacheDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
