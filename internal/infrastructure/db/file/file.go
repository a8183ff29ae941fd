// Package file implements the record store contract on top of plain JSON
// files, one file per logical collection. This is the client-resident
// substrate: a directory the engine owns outright, read and written whole.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Store is a file-backed RecordStore. Writes replace the collection file via
// a temp-file rename, so a reader always observes either the old or the new
// complete collection.
type Store struct {
	dir string
	log zerolog.Logger
	mu  sync.RWMutex
}

// New creates the data directory if needed and returns a Store rooted at it.
func New(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: create data dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// ReadCollection returns the records of the named collection. Missing or
// corrupt files degrade to an empty sequence with a log entry; readers never
// fail because the substrate is damaged.
func (s *Store) ReadCollection(_ context.Context, name string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.path(name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("collection", name).Msg("collection unreadable, treating as empty")
		}
		return nil, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(b, &records); err != nil {
		s.log.Warn().Err(err).Str("collection", name).Msg("collection corrupt, treating as empty")
		return nil, nil
	}
	return records, nil
}

// WriteCollection replaces the named collection in full.
func (s *Store) WriteCollection(_ context.Context, name string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []json.RawMessage{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("file store: temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) path(name string) string {
	// Base guards against a collection name escaping the data dir.
	return filepath.Join(s.dir, filepath.Base(name)+".json")
}
