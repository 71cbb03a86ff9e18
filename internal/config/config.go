// Package config loads service settings from an optional file and
// TODOS_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TODOS"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Assets AssetsConfig `mapstructure:"assets"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Swagger         bool          `mapstructure:"swagger"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type StoreConfig struct {
	Driver string       `mapstructure:"driver"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

type RedisConfig struct {
	URL    string `mapstructure:"url"`
	Prefix string `mapstructure:"prefix"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// AssetsConfig selects the fallback for non-API requests. At most one of
// Dir and Upstream may be set; with neither, unmatched routes get 404.
type AssetsConfig struct {
	Dir      string `mapstructure:"dir"`
	Upstream string `mapstructure:"upstream"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.swagger", false)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.redis.url", "redis://localhost:6379/0")
	v.SetDefault("store.redis.prefix", "")
	v.SetDefault("store.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo.database", "todos")
	v.SetDefault("store.mongo.collection", "kv")
	v.SetDefault("store.sqlite.path", "todos.db")

	v.SetDefault("assets.dir", "")
	v.SetDefault("assets.upstream", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverRedis, DriverMongo, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}

	if c.Assets.Dir != "" && c.Assets.Upstream != "" {
		return errors.New("config: assets.dir and assets.upstream are mutually exclusive")
	}
	for _, o := range c.Server.CORSOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("config: cors origin %q must be \"*\" or start with http:// or https://", o)
		}
	}
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is empty")
	}
	return nil
}
