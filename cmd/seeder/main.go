// Command seeder populates the configured record store with a small demo
// referral network and ticket history. Safe to run repeatedly: it skips
// seeding when the users collection already holds data.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/infrastructure/config"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/infrastructure/db"
	"github.com/ilitchv/MiAppCompleta1-sub001/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx := context.Background()

	store, cleanup, err := db.NewRecordStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open record store")
		os.Exit(1)
	}
	defer cleanup()

	existing, err := store.ReadCollection(ctx, ports.CollectionUsers)
	if err == nil && len(existing) > 0 {
		log.Info().Int("users", len(existing)).Msg("store already seeded, skipping")
		return
	}

	now := time.Now().UTC()
	admin := demoUser("Admin", "", domain.RoleAdmin, domain.StatusActive, 0, now)
	root := demoUser("Rosa Delgado", "", domain.RoleUser, domain.StatusActive, 250, now)
	a := demoUser("Luis Marin", root.ID, domain.RoleUser, domain.StatusActive, 120, now)
	b := demoUser("Carla Mejia", root.ID, domain.RoleUser, domain.StatusActive, 80, now)
	c := demoUser("Pedro Soto", a.ID, domain.RoleUser, domain.StatusPending, 0, now)
	users := []domain.User{admin, root, a, b, c}

	tickets := []domain.Ticket{
		{TicketNumber: "T-0001", UserID: a.ID, GrandTotal: 10, CreatedAt: now},
		{TicketNumber: "T-0002", UserID: b.ID, GrandTotal: 20, CreatedAt: now},
		{TicketNumber: "T-0003", UserID: c.ID, GrandTotal: 5, CreatedAt: now},
		{TicketNumber: "T-0004", GrandTotal: 12.50, CreatedAt: now}, // unowned walk-in sale
	}

	if err := store.WriteCollection(ctx, ports.CollectionUsers, toRaw(users)); err != nil {
		log.Error().Err(err).Msg("seed users failed")
		os.Exit(1)
	}
	if err := store.WriteCollection(ctx, ports.CollectionTickets, toRaw(tickets)); err != nil {
		log.Error().Err(err).Msg("seed tickets failed")
		os.Exit(1)
	}

	log.Info().
		Int("users", len(users)).
		Int("tickets", len(tickets)).
		Str("data_dir", cfg.DataDir).
		Msg("demo data seeded")
}

func demoUser(name, sponsorID string, role domain.Role, status domain.UserStatus, balance float64, now time.Time) domain.User {
	return domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		SponsorID: sponsorID,
		Balance:   balance,
		Role:      role,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toRaw[T any](items []T) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			panic(fmt.Sprintf("seeder: encode record: %v", err))
		}
		out = append(out, b)
	}
	return out
}
