// Package db assembles the configured record store backend for the binaries.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/infrastructure/config"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/infrastructure/db/file"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/infrastructure/db/mongo"
)

// NewRecordStore builds the record store selected by cfg.StoreBackend and
// returns it along with a cleanup func releasing any held connections.
func NewRecordStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.RecordStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo store: %w", err)
		}
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("failed to disconnect mongo client")
			}
		}
		return mongo.NewRecordStore(database, log), cleanup, nil

	case config.BackendFile, "":
		store, err := file.New(cfg.DataDir, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
