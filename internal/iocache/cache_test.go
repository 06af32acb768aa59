package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/nowcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore builds a store backed by a throwaway database file.
func newSQLiteStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(responseTable, schema.SQLiteBackend, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

// TestCacheStoreRoundtrip sets and reads back a cached response.
func TestCacheStoreRoundtrip(t *testing.T) {
	store := newSQLiteStore(t)
	now := time.Now().Unix()

	require.NoError(t, store.Set("/national?iso3=CIV", []byte(`{"CIV":{}}`), 1, now))

	value, version, ts, err := store.Get("/national?iso3=CIV")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"CIV":{}}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, now, ts)
}

// TestCacheStoreOverwrite replaces an existing key in place.
func TestCacheStoreOverwrite(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Set("key", []byte("old"), 1, 100))
	require.NoError(t, store.Set("key", []byte("new"), 2, 200))

	value, version, ts, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalEntries)
}

// TestCacheStoreMiss returns sql.ErrNoRows for absent keys.
func TestCacheStoreMiss(t *testing.T) {
	store := newSQLiteStore(t)

	_, _, _, err := store.Get("absent")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

// TestCacheStoreClear empties the table without dropping it.
func TestCacheStoreClear(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Set("b", []byte("2"), 1, 200))
	require.NoError(t, store.Clear())

	_, _, _, err := store.Get("a")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, store.Set("c", []byte("3"), 1, 300))
	_, _, _, err = store.Get("c")
	assert.NoError(t, err)
}

// TestCacheStoreStatus reports entry counts and timestamp bounds.
func TestCacheStoreStatus(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalEntries)

	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Set("b", []byte("2"), 1, 300))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, time.Unix(100, 0), status.OldestEntryTime)
	assert.Equal(t, time.Unix(300, 0), status.LastEntryTime)
}

// TestNoneBackend verifies the no-op store behavior.
func TestNoneBackend(t *testing.T) {
	store, err := NewCacheStore(responseTable, schema.NoneBackend, "")
	require.NoError(t, err)

	require.NoError(t, store.Set("key", []byte("value"), 1, 100))
	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

// TestNewCacheStoreRejections covers bad table names and backends.
func TestNewCacheStoreRejections(t *testing.T) {
	_, err := NewCacheStore("bad;table", schema.SQLiteBackend, "")
	assert.Error(t, err)

	_, err = NewCacheStore(responseTable, schema.CacheBackend("redis"), "")
	assert.Error(t, err)
}

// TestQuoteTableName uses the quoting style of each backend.
func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`response_cache`", quoteTableName(responseTable, schema.MySQLBackend))
	assert.Equal(t, `"response_cache"`, quoteTableName(responseTable, schema.SQLiteBackend))
	assert.Equal(t, `"response_cache"`, quoteTableName(responseTable, schema.PostgreSQLBackend))
}

// TestClearCacheSQLite removes the database file.
func TestClearCacheSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(responseTable, schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
	assert.NoFileExists(t, path)

	// Clearing an already-removed file is fine.
	assert.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))

	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
}
