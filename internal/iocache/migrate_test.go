package iocache

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/streampulse/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCache_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	for _, backend := range []schema.DatabaseBackend{schema.NoneBackend, schema.RedisBackend} {
		err := MigrateCache(&buf, backend, "", -1)
		assert.ErrorContains(t, err, "migrations are not supported")
	}
}

func TestMigrateCache_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	var buf bytes.Buffer

	require.NoError(t, MigrateCache(&buf, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, buf.String(), "to version 2")

	buf.Reset()
	require.NoError(t, MigrateCache(&buf, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, buf.String(), "already at the latest version")

	buf.Reset()
	require.NoError(t, MigrateCache(&buf, schema.SQLiteBackend, dbPath, 1))
	assert.Contains(t, buf.String(), "from version 2 to version 1")

	require.NoError(t, MigrateCache(&buf, schema.SQLiteBackend, dbPath, 0))
	require.NoError(t, MigrateCache(&buf, schema.SQLiteBackend, dbPath, -1))

	// A migrated database still works as a cache.
	store, err := NewCacheStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Set("k", []byte("v"), 1, 1))
}

func TestMigrateCache_AfterStoreCreated(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "existing.db")
	store, err := NewCacheStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("v"), 1, 1))
	require.NoError(t, store.Close())

	var buf bytes.Buffer
	require.NoError(t, MigrateCache(&buf, schema.SQLiteBackend, dbPath, -1))
}
