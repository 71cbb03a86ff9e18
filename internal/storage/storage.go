// Package storage opens the kv.Store selected by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/kv"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/kv/mongostore"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/kv/redisstore"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/kv/sqlitestore"
)

// Open returns the store and a function releasing its connections.
func Open(ctx context.Context, cfg config.StoreConfig) (kv.Store, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return kv.NewMemory(), func() error { return nil }, nil
	case config.DriverRedis:
		s, err := redisstore.Open(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverMongo:
		s, err := mongostore.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverSQLite:
		s, err := sqlitestore.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
