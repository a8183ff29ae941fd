package ports

import (
	"context"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
)

// AuditLog is the append-only trail of mutating operations. Entries are kept
// most-recent-first; once the trail exceeds domain.MaxAuditEntries the oldest
// entries are trimmed. No entry is ever modified after append.
type AuditLog interface {
	Append(ctx context.Context, entry domain.AuditLogEntry) error
	ReadAll(ctx context.Context) ([]domain.AuditLogEntry, error)
}
