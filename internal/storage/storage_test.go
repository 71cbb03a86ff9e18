package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/kv"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/kv/sqlitestore"
)

func TestOpenMemory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), config.StoreConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &kv.Memory{}, s)
	assert.NoError(t, closeFn())
}

func TestOpenSQLite(t *testing.T) {
	cfg := config.StoreConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "todos.db")},
	}
	s, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &sqlitestore.Store{}, s)
	require.NoError(t, s.Put(context.Background(), "todos", []byte(`[]`)))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.StoreConfig{Driver: "etcd"})
	assert.Error(t, err)
}

func TestOpenRedisBadURL(t *testing.T) {
	cfg := config.StoreConfig{
		Driver: config.DriverRedis,
		Redis:  config.RedisConfig{URL: "not-a-url"},
	}
	_, _, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}
