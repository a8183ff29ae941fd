package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/metrics"
)

// AuditLogService persists the append-only audit trail in the record store,
// most-recent-first, capped at domain.MaxAuditEntries.
type AuditLogService struct {
	store ports.RecordStore
	log   zerolog.Logger
}

// NewAuditLogService returns an AuditLog backed by the given record store.
func NewAuditLogService(store ports.RecordStore, log zerolog.Logger) *AuditLogService {
	return &AuditLogService{store: store, log: log}
}

// Append adds entry to the front of the trail and trims the tail once the
// trail exceeds its capacity. Existing entries are carried over untouched.
func (a *AuditLogService) Append(ctx context.Context, entry domain.AuditLogEntry) error {
	existing, err := loadAuditEntries(ctx, a.store, a.log)
	if err != nil {
		return err
	}

	entries := make([]domain.AuditLogEntry, 0, len(existing)+1)
	entries = append(entries, entry)
	entries = append(entries, existing...)

	if trimmed := len(entries) - domain.MaxAuditEntries; trimmed > 0 {
		entries = entries[:domain.MaxAuditEntries]
		metrics.AuditEntriesTrimmedTotal.Add(float64(trimmed))
		a.log.Debug().Int("trimmed", trimmed).Msg("audit trail capacity reached, oldest entries dropped")
	}

	if err := saveAuditEntries(ctx, a.store, entries); err != nil {
		return err
	}

	a.log.Info().
		Str("action", string(entry.Action)).
		Str("target_id", entry.TargetID).
		Str("actor", entry.Actor).
		Msg("audit entry appended")

	return nil
}

// ReadAll returns the full trail, most-recent-first.
func (a *AuditLogService) ReadAll(ctx context.Context) ([]domain.AuditLogEntry, error) {
	return loadAuditEntries(ctx, a.store, a.log)
}
