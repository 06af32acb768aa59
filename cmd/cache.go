package cmd

import (
	"fmt"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/internal/iocache"
	"github.com/huangsam/nowcast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.CacheBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend: %s", backend)
	}

	// Initialize caching with the loaded config
	if err := iocache.InitCaching(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by retrieval commands. This avoids API config
// processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the API response cache (improves performance)",
	Long: `Manage the response cache that speeds up repeated retrievals.

Nowcast caches API responses to avoid refetching the same country and date
window on every run. This dramatically improves performance when iterating
on the same query.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Run schema migrations on the cache database

Examples:
  # Check cache status
  nowcast cache status

  # Clear cache after the upstream model is re-released
  nowcast cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached API responses",
	Long: `Delete all cached API responses from the configured backend.

Use this when:
- The upstream nowcasting model was re-released
- Cache may be stale or corrupted
- Testing retrieval performance without cache

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  nowcast cache clear

  # Clear MySQL cache (set connection string via env variable)
  NOWCAST_CACHE_BACKEND=mysql NOWCAST_CACHE_DB_CONNECT="..." nowcast cache clear`,
	PreRunE: cacheSetupWrapper,
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
	Long: `Show detailed information about the response cache.

Displays:
- Backend type and connection status
- Total number of cached responses
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  nowcast cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetResponseStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}

// cacheMigrateCmd runs cache schema migrations.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations on the cache database",
	Long: `Apply or roll back schema migrations for the response cache.

By default migrates to the latest version. Use --target-version to pin a
specific version, or 0 to roll everything back.

Examples:
  # Migrate to the latest schema
  nowcast cache migrate

  # Roll back all migrations
  nowcast cache migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migration opens its own connection, so skip store initialization.
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.CacheBackend(viper.GetString("cache-backend"))
		connStr := viper.GetString("cache-db-connect")
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateCache(backend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate cache", err)
		}
	},
}
