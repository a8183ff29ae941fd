package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store backend selectors.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreBackend selects the record store implementation: "file" for the
	// client-resident JSON store, "mongo" for hosted deployments.
	StoreBackend string `env:"STORE_BACKEND, default=file"`
	DataDir      string `env:"DATA_DIR,      default=./data"`

	Session SessionConfig
	Sync    SyncConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// UserID names the signed-in user whose session the engine keeps in sync.
	UserID string `env:"SESSION_USER_ID"`
}

type SyncConfig struct {
	// IntervalMs is the session reconciliation period in milliseconds.
	IntervalMs int `env:"SYNC_INTERVAL_MS, default=2000"`
}

// Interval returns the reconciliation period as a duration.
func (c SyncConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=referral_ledger"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
