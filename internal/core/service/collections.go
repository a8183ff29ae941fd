package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
)

// decodeRecords unmarshals each raw record into T. Corrupt records are
// skipped with a warning so one damaged row never hides the rest of the
// collection.
func decodeRecords[T any](raw []json.RawMessage, collection string, log zerolog.Logger) []T {
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			log.Warn().Err(err).Str("collection", collection).Int("index", i).Msg("skipping corrupt record")
			continue
		}
		out = append(out, item)
	}
	return out
}

// encodeRecords marshals each item back into the raw form the record store
// persists.
func encodeRecords[T any](items []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode record: %w", err)
		}
		out = append(out, b)
	}
	return out, nil
}

// usersMu serialises every read-modify-write cycle over the users collection
// across all services in this process. The store only offers full-collection
// load and replace, so two interleaved writers would silently clobber each
// other's records without it.
var usersMu sync.Mutex

// FindUser locates one user record in the authoritative store.
func FindUser(ctx context.Context, store ports.RecordStore, log zerolog.Logger, id string) (*domain.User, error) {
	users, err := loadUsers(ctx, store, log)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", domain.ErrUserNotFound)
}

func loadUsers(ctx context.Context, store ports.RecordStore, log zerolog.Logger) ([]domain.User, error) {
	raw, err := store.ReadCollection(ctx, ports.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("%w: read users: %v", domain.ErrStoreUnavailable, err)
	}
	return decodeRecords[domain.User](raw, ports.CollectionUsers, log), nil
}

func saveUsers(ctx context.Context, store ports.RecordStore, users []domain.User) error {
	raw, err := encodeRecords(users)
	if err != nil {
		return err
	}
	if err := store.WriteCollection(ctx, ports.CollectionUsers, raw); err != nil {
		return fmt.Errorf("%w: write users: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func loadTickets(ctx context.Context, store ports.RecordStore, log zerolog.Logger) ([]domain.Ticket, error) {
	raw, err := store.ReadCollection(ctx, ports.CollectionTickets)
	if err != nil {
		return nil, fmt.Errorf("%w: read tickets: %v", domain.ErrStoreUnavailable, err)
	}
	return decodeRecords[domain.Ticket](raw, ports.CollectionTickets, log), nil
}

func loadAuditEntries(ctx context.Context, store ports.RecordStore, log zerolog.Logger) ([]domain.AuditLogEntry, error) {
	raw, err := store.ReadCollection(ctx, ports.CollectionAuditLog)
	if err != nil {
		return nil, fmt.Errorf("%w: read audit log: %v", domain.ErrStoreUnavailable, err)
	}
	return decodeRecords[domain.AuditLogEntry](raw, ports.CollectionAuditLog, log), nil
}

func saveAuditEntries(ctx context.Context, store ports.RecordStore, entries []domain.AuditLogEntry) error {
	raw, err := encodeRecords(entries)
	if err != nil {
		return err
	}
	if err := store.WriteCollection(ctx, ports.CollectionAuditLog, raw); err != nil {
		return fmt.Errorf("%w: write audit log: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
