package ports

import (
	"context"
	"time"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
)

// SyncEventKind labels the notifications a session watcher emits.
type SyncEventKind string

const (
	// SyncChanged fires when the watched user's balance, pending balance or
	// status differs from the held snapshot. User carries the new record.
	SyncChanged SyncEventKind = "changed"
	// SyncTerminated fires when the watched user vanished from the store
	// (removed by an external actor). The watcher returns to idle and the
	// event channel is closed after this event.
	SyncTerminated SyncEventKind = "terminated"
)

// SyncEvent is one reconciliation notification.
type SyncEvent struct {
	Kind SyncEventKind
	User *domain.User // set for SyncChanged, nil for SyncTerminated
}

// WatchOptions tunes a session watch.
type WatchOptions struct {
	// Interval between reconciliation ticks. Defaults to 2s when zero.
	Interval time.Duration
}

// SessionWatcher reconciles an in-memory user snapshot against the
// authoritative store on a fixed interval. A watcher is either idle or
// watching exactly one user; Stop deterministically cancels the watch and
// releases its timer.
type SessionWatcher interface {
	Watch(ctx context.Context, user domain.User) (<-chan SyncEvent, error)
	Stop()
}
