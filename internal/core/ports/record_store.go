package ports

import (
	"context"
	"encoding/json"
)

// Logical collection names understood by the record store.
const (
	CollectionUsers    = "users"
	CollectionTickets  = "tickets"
	CollectionAuditLog = "audit_log"
)

// RecordStore is the persistence substrate contract: a durable mapping from a
// logical collection name to an ordered sequence of JSON records.
//
// ReadCollection fails soft: missing or corrupt data yields an empty sequence,
// not an error, so a damaged substrate degrades to "no data" instead of taking
// the caller down. WriteCollection replaces the whole collection; an
// implementation must never expose a partially written collection to readers.
type RecordStore interface {
	ReadCollection(ctx context.Context, name string) ([]json.RawMessage, error)
	WriteCollection(ctx context.Context, name string, records []json.RawMessage) error
}
