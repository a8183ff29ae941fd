package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/metrics"
)

const defaultSyncInterval = 2 * time.Second

// eventBuffer bounds the watcher's event channel. Once a stalled consumer has
// let it fill, each newly produced signal is dropped (and logged) until the
// consumer drains the backlog.
const eventBuffer = 16

// SessionWatcher reconciles an in-memory user snapshot against the
// authoritative store on a fixed interval. It is either idle or watching one
// user; the owning session controls its lifetime exclusively through Watch
// and Stop, so no timer can outlive the session that started it.
type SessionWatcher struct {
	store    ports.RecordStore
	cache    ports.SessionCache
	log      zerolog.Logger
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSessionWatcher returns an idle watcher. The zero interval in opts
// defaults to 2s.
func NewSessionWatcher(store ports.RecordStore, cache ports.SessionCache, log zerolog.Logger, opts ports.WatchOptions) *SessionWatcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &SessionWatcher{
		store:    store,
		cache:    cache,
		log:      log,
		interval: interval,
	}
}

// Watch transitions the watcher from idle to watching, holding user as the
// initial snapshot. The returned channel delivers change and termination
// signals and is closed when the watch ends. Calling Watch while a watch is
// already running returns domain.ErrWatchActive.
func (w *SessionWatcher) Watch(ctx context.Context, user domain.User) (<-chan ports.SyncEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return nil, domain.ErrWatchActive
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	events := make(chan ports.SyncEvent, eventBuffer)

	w.cancel = cancel
	w.done = done

	go w.run(ctx, user, events, done)

	w.log.Info().Str("user_id", user.ID).Dur("interval", w.interval).Msg("session watch started")
	return events, nil
}

// Stop cancels the running watch, waits for its goroutine to exit, and
// returns the watcher to idle. Stopping an idle watcher is a no-op.
func (w *SessionWatcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	w.log.Info().Msg("session watch stopped")
}

// run is the watch loop. Ticks execute sequentially on this goroutine, so a
// tick can never overlap a still-running predecessor.
func (w *SessionWatcher) run(ctx context.Context, snapshot domain.User, events chan<- ports.SyncEvent, done chan struct{}) {
	defer close(done)
	defer close(events)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.SyncTicksTotal.Inc()

			current, found, err := w.lookup(ctx, snapshot.ID)
			if err != nil {
				// Store trouble: keep the held snapshot and try again on
				// the next tick rather than tearing the session down.
				w.log.Warn().Err(err).Str("user_id", snapshot.ID).Msg("sync tick skipped")
				continue
			}

			if !found {
				// Removed by an external actor: the session is over.
				if err := w.cache.Clear(ctx, snapshot.ID); err != nil {
					w.log.Warn().Err(err).Str("user_id", snapshot.ID).Msg("failed to clear session cache")
				}
				metrics.SyncTerminationsTotal.Inc()
				w.log.Info().Str("user_id", snapshot.ID).Msg("watched user removed from store, terminating session")
				w.emit(events, ports.SyncEvent{Kind: ports.SyncTerminated})
				w.release(done)
				return
			}

			if current.Balance != snapshot.Balance ||
				current.PendingBalance != snapshot.PendingBalance ||
				current.Status != snapshot.Status {
				snapshot = *current
				if err := w.cache.SaveSnapshot(ctx, snapshot); err != nil {
					w.log.Warn().Err(err).Str("user_id", snapshot.ID).Msg("failed to persist session snapshot")
				}
				metrics.SyncChangesTotal.Inc()
				w.log.Debug().
					Str("user_id", snapshot.ID).
					Float64("balance", snapshot.Balance).
					Str("status", string(snapshot.Status)).
					Msg("watched user data changed")
				w.emit(events, ports.SyncEvent{Kind: ports.SyncChanged, User: current})
			}
		}
	}
}

// lookup re-reads the authoritative user collection and locates the watched
// record.
func (w *SessionWatcher) lookup(ctx context.Context, userID string) (*domain.User, bool, error) {
	users, err := loadUsers(ctx, w.store, w.log)
	if err != nil {
		return nil, false, err
	}
	for i := range users {
		if users[i].ID == userID {
			u := users[i]
			return &u, true, nil
		}
	}
	return nil, false, nil
}

// emit delivers an event without ever blocking the tick loop.
func (w *SessionWatcher) emit(events chan<- ports.SyncEvent, ev ports.SyncEvent) {
	select {
	case events <- ev:
	default:
		w.log.Warn().Str("kind", string(ev.Kind)).Msg("sync event dropped, consumer not keeping up")
	}
}

// release returns the watcher to idle after a self-initiated termination,
// unless a newer watch has already replaced this one.
func (w *SessionWatcher) release(done chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done == done {
		w.cancel()
		w.cancel, w.done = nil, nil
	}
}
