package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/domain"
	"github.com/ilitchv/MiAppCompleta1-sub001/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub record store shared by the service tests
// ---------------------------------------------------------------------------

type stubStore struct {
	mu          sync.Mutex
	collections map[string][]json.RawMessage
	readErr     map[string]error // per-collection read failure injection
	writeErr    map[string]error // per-collection write failure injection
}

func newStubStore() *stubStore {
	return &stubStore{
		collections: make(map[string][]json.RawMessage),
		readErr:     make(map[string]error),
		writeErr:    make(map[string]error),
	}
}

func (s *stubStore) ReadCollection(_ context.Context, name string) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readErr[name]; err != nil {
		return nil, err
	}
	records := s.collections[name]
	out := make([]json.RawMessage, len(records))
	copy(out, records)
	return out, nil
}

func (s *stubStore) WriteCollection(_ context.Context, name string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErr[name]; err != nil {
		return err
	}
	stored := make([]json.RawMessage, len(records))
	copy(stored, records)
	s.collections[name] = stored
	return nil
}

// setReadErr injects or clears a read failure for one collection.
func (s *stubStore) setReadErr(name string, err error) {
	s.mu.Lock()
	s.readErr[name] = err
	s.mu.Unlock()
}

func (s *stubStore) seedUsers(t *testing.T, users ...domain.User) {
	t.Helper()
	s.seed(t, ports.CollectionUsers, len(users), func(i int) any { return users[i] })
}

func (s *stubStore) seedTickets(t *testing.T, tickets ...domain.Ticket) {
	t.Helper()
	s.seed(t, ports.CollectionTickets, len(tickets), func(i int) any { return tickets[i] })
}

func (s *stubStore) seed(t *testing.T, name string, n int, item func(int) any) {
	t.Helper()
	records := make([]json.RawMessage, 0, n)
	for i := 0; i < n; i++ {
		b, err := json.Marshal(item(i))
		if err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
		records = append(records, b)
	}
	s.mu.Lock()
	s.collections[name] = records
	s.mu.Unlock()
}

func (s *stubStore) storedUsers(t *testing.T) []domain.User {
	t.Helper()
	return decodeStored[domain.User](t, s, ports.CollectionUsers)
}

func (s *stubStore) storedAuditEntries(t *testing.T) []domain.AuditLogEntry {
	t.Helper()
	return decodeStored[domain.AuditLogEntry](t, s, ports.CollectionAuditLog)
}

func decodeStored[T any](t *testing.T, s *stubStore, name string) []T {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.collections[name]))
	for _, raw := range s.collections[name] {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			t.Fatalf("decode stored %s record: %v", name, err)
		}
		out = append(out, item)
	}
	return out
}

// testLogger returns a silenced logger for use in tests.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
