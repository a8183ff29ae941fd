package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
)

const testInterval = 10 * time.Millisecond

// stubSessionCache records snapshot saves and clears.
type stubSessionCache struct {
	mu     sync.Mutex
	saved  []domain.User
	clears []string
}

func (c *stubSessionCache) SaveSnapshot(_ context.Context, user domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saved = append(c.saved, user)
	return nil
}

func (c *stubSessionCache) Clear(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clears = append(c.clears, userID)
	return nil
}

func (c *stubSessionCache) lastSaved() (domain.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.saved) == 0 {
		return domain.User{}, false
	}
	return c.saved[len(c.saved)-1], true
}

func watchedUser(balance float64) domain.User {
	return domain.User{ID: "watched", Name: "Watched", Balance: balance, Status: domain.StatusActive}
}

func awaitEvent(t *testing.T, events <-chan ports.SyncEvent) ports.SyncEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed while waiting for an event")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for sync event")
		return ports.SyncEvent{}
	}
}

func TestWatcherEmitsChangeOnBalanceUpdate(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t, watchedUser(100))
	cache := &stubSessionCache{}
	w := NewSessionWatcher(store, cache, testLogger(), ports.WatchOptions{Interval: testInterval})
	defer w.Stop()

	events, err := w.Watch(context.Background(), watchedUser(100))
	require.NoError(t, err)

	// External actor credits funds.
	store.seedUsers(t, watchedUser(150))

	ev := awaitEvent(t, events)
	require.Equal(t, ports.SyncChanged, ev.Kind)
	require.NotNil(t, ev.User)
	assert.Equal(t, 150.0, ev.User.Balance)

	snap, ok := cache.lastSaved()
	require.True(t, ok, "snapshot was not persisted to the session cache")
	assert.Equal(t, 150.0, snap.Balance)

	// No further change, no further signal.
	select {
	case ev := <-events:
		t.Fatalf("unexpected extra event %+v for an unchanged record", ev)
	case <-time.After(5 * testInterval):
	}
}

func TestWatcherOneSignalPerDistinctChange(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t, watchedUser(100))
	w := NewSessionWatcher(store, &stubSessionCache{}, testLogger(), ports.WatchOptions{Interval: testInterval})
	defer w.Stop()

	events, err := w.Watch(context.Background(), watchedUser(100))
	require.NoError(t, err)

	store.seedUsers(t, watchedUser(150))
	first := awaitEvent(t, events)
	assert.Equal(t, 150.0, first.User.Balance)

	store.seedUsers(t, watchedUser(175))
	second := awaitEvent(t, events)
	assert.Equal(t, 175.0, second.User.Balance)

	select {
	case ev := <-events:
		t.Fatalf("third event %+v for two distinct changes", ev)
	case <-time.After(5 * testInterval):
	}
}

func TestWatcherDetectsStatusChange(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t, watchedUser(100))
	w := NewSessionWatcher(store, &stubSessionCache{}, testLogger(), ports.WatchOptions{Interval: testInterval})
	defer w.Stop()

	events, err := w.Watch(context.Background(), watchedUser(100))
	require.NoError(t, err)

	suspended := watchedUser(100)
	suspended.Status = domain.StatusSuspended
	store.seedUsers(t, suspended)

	ev := awaitEvent(t, events)
	require.Equal(t, ports.SyncChanged, ev.Kind)
	assert.Equal(t, domain.StatusSuspended, ev.User.Status)
}

func TestWatcherTerminatesWhenUserRemoved(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t, watchedUser(100))
	cache := &stubSessionCache{}
	w := NewSessionWatcher(store, cache, testLogger(), ports.WatchOptions{Interval: testInterval})

	events, err := w.Watch(context.Background(), watchedUser(100))
	require.NoError(t, err)

	// Administrator deletes the account out from under the session.
	store.seedUsers(t)

	ev := awaitEvent(t, events)
	assert.Equal(t, ports.SyncTerminated, ev.Kind)
	assert.Nil(t, ev.User)

	// The channel closes once the watch ends.
	select {
	case _, ok := <-events:
		assert.False(t, ok, "expected closed channel after termination")
	case <-time.After(time.Second):
		t.Fatal("event channel not closed after termination")
	}

	cache.mu.Lock()
	assert.Contains(t, cache.clears, "watched")
	cache.mu.Unlock()

	// Watcher returned to idle: a new watch is accepted.
	store.seedUsers(t, watchedUser(1))
	_, err = w.Watch(context.Background(), watchedUser(1))
	require.NoError(t, err)
	w.Stop()
}

func TestWatcherRejectsConcurrentWatch(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t, watchedUser(100))
	w := NewSessionWatcher(store, &stubSessionCache{}, testLogger(), ports.WatchOptions{Interval: testInterval})
	defer w.Stop()

	_, err := w.Watch(context.Background(), watchedUser(100))
	require.NoError(t, err)

	_, err = w.Watch(context.Background(), watchedUser(100))
	require.ErrorIs(t, err, domain.ErrWatchActive)
}

func TestWatcherStopEndsWatch(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t, watchedUser(100))
	w := NewSessionWatcher(store, &stubSessionCache{}, testLogger(), ports.WatchOptions{Interval: testInterval})

	events, err := w.Watch(context.Background(), watchedUser(100))
	require.NoError(t, err)

	w.Stop()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "expected closed channel after Stop")
	case <-time.After(time.Second):
		t.Fatal("event channel not closed after Stop")
	}

	// Stopping again is a no-op, and repeated start/stop cycles keep working.
	w.Stop()
	for i := 0; i < 3; i++ {
		_, err := w.Watch(context.Background(), watchedUser(100))
		require.NoError(t, err)
		w.Stop()
	}
}

func TestWatcherSkipsTickOnStoreError(t *testing.T) {
	store := newStubStore()
	store.seedUsers(t, watchedUser(100))
	w := NewSessionWatcher(store, &stubSessionCache{}, testLogger(), ports.WatchOptions{Interval: testInterval})
	defer w.Stop()

	events, err := w.Watch(context.Background(), watchedUser(100))
	require.NoError(t, err)

	// A transient read failure must not be mistaken for a deleted user.
	store.setReadErr(ports.CollectionUsers, errors.New("device busy"))
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v during store outage", ev)
	case <-time.After(5 * testInterval):
	}

	// Once the store recovers, reconciliation resumes.
	store.setReadErr(ports.CollectionUsers, nil)
	store.seedUsers(t, watchedUser(150))

	ev := awaitEvent(t, events)
	assert.Equal(t, ports.SyncChanged, ev.Kind)
}
