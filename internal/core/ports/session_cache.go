package ports

import (
	"context"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
)

// SessionCache holds the session-scoped copy of a user record maintained by
// the sync watcher. The cache is advisory: the record store stays
// authoritative, so cache failures are logged but never fail a sync tick.
type SessionCache interface {
	SaveSnapshot(ctx context.Context, user domain.User) error
	Clear(ctx context.Context, userID string) error
}
