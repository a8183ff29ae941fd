// Command engine runs the client-resident ledger engine: it opens the
// configured record store, connects the Redis session cache, and keeps the
// signed-in user's session synchronised with the store until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/service"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/infrastructure/config"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/infrastructure/db"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/infrastructure/db/redis"
	"github.com/ilitchv/MiAppCompleta1-sub001/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	if cfg.Session.UserID == "" {
		log.Error().Msg("SESSION_USER_ID is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := db.NewRecordStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open record store")
		os.Exit(1)
	}
	defer cleanup()

	client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect session cache")
		os.Exit(1)
	}
	defer client.Close()
	cache := redis.NewSessionCache(client)

	network := service.NewNetworkService(store, log)
	if tree, err := network.Build(ctx, ports.BuildTreeInput{Global: true}); err != nil {
		log.Warn().Err(err).Msg("could not load referral network summary")
	} else {
		log.Info().
			Int("direct_roots", len(tree.Children)).
			Float64("total_sales", tree.Sales).
			Msg("referral network loaded")
	}

	user, err := service.FindUser(ctx, store, log, cfg.Session.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", cfg.Session.UserID).Msg("session user not found in store")
		os.Exit(1)
	}

	watcher := service.NewSessionWatcher(store, cache, log, ports.WatchOptions{Interval: cfg.Sync.Interval()})
	events, err := watcher.Watch(ctx, *user)
	if err != nil {
		log.Error().Err(err).Msg("failed to start session watcher")
		os.Exit(1)
	}
	defer watcher.Stop()

	log.Info().
		Str("user_id", user.ID).
		Dur("interval", cfg.Sync.Interval()).
		Msg("session sync running, press ctrl-c to stop")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Kind {
			case ports.SyncChanged:
				log.Info().
					Str("user_id", ev.User.ID).
					Float64("balance", ev.User.Balance).
					Str("status", string(ev.User.Status)).
					Msg("session data refreshed")
			case ports.SyncTerminated:
				log.Warn().Str("user_id", user.ID).Msg("session terminated, user removed from store")
				return
			}
		}
	}
}
