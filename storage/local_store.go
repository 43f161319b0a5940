package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection names the logical record collections. The on-disk layout
// is one JSON array per collection, matching the string-keyed blobs the
// web client persisted.
type Collection string

const (
	CollectionUsers         Collection = "users"
	CollectionLostItems     Collection = "lostItems"
	CollectionFoundItems    Collection = "foundItems"
	CollectionNotifications Collection = "notifications"
	CollectionAdminMessages Collection = "adminMessages"
	CollectionRewards       Collection = "rewards"
	CollectionSyncQueue     Collection = "syncQueue"
)

// ErrConflict is returned when a compare-and-swap write loses to a
// concurrent writer. Callers re-read and retry.
var ErrConflict = errors.New("collection modified since snapshot was taken")

// LocalStore persists whole collections as JSON arrays under a data
// directory. Every write replaces the full collection; the version
// counter turns the old last-writer-wins overwrite into an explicit
// read snapshot / compare-and-swap cycle.
type LocalStore struct {
	dir string

	mu       sync.Mutex
	versions map[Collection]uint64
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	return &LocalStore{
		dir:      dir,
		versions: make(map[Collection]uint64),
	}, nil
}

// Read decodes the collection into out (a pointer to a slice) and
// returns the snapshot version to pass back to Write. A collection
// that does not exist yet reads as empty.
func (s *LocalStore) Read(col Collection, out interface{}) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.versions[col]

	data, err := os.ReadFile(s.path(col))
	if err != nil {
		if os.IsNotExist(err) {
			return version, nil
		}
		return 0, fmt.Errorf("failed to read collection %s: %w", col, err)
	}

	if len(data) == 0 {
		return version, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return 0, fmt.Errorf("failed to decode collection %s: %w", col, err)
	}

	return version, nil
}

// ReadRaw returns the raw JSON array for a collection alongside its
// current version. Missing collections read as an empty array.
func (s *LocalStore) ReadRaw(col Collection) ([]byte, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.versions[col]

	data, err := os.ReadFile(s.path(col))
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("[]"), version, nil
		}
		return nil, 0, fmt.Errorf("failed to read collection %s: %w", col, err)
	}

	return data, version, nil
}

// Write replaces the collection contents if the caller still holds the
// current snapshot version, and returns the bytes that were persisted.
// A stale version returns ErrConflict and writes nothing.
func (s *LocalStore) Write(col Collection, records interface{}, version uint64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.versions[col] != version {
		return nil, ErrConflict
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection %s: %w", col, err)
	}

	tmp := s.path(col) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write collection %s: %w", col, err)
	}
	if err := os.Rename(tmp, s.path(col)); err != nil {
		return nil, fmt.Errorf("failed to replace collection %s: %w", col, err)
	}

	s.versions[col]++
	return data, nil
}

// Version reports the current version of a collection.
func (s *LocalStore) Version(col Collection) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[col]
}

func (s *LocalStore) path(col Collection) string {
	return filepath.Join(s.dir, string(col)+".json")
}
