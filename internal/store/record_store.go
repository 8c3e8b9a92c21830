package store

import (
	"path/filepath"
	"sync"

	"ristkey/internal/domain"
)

const knownKeysFile = "known_keys.json"

// KeyRecordFileStore caches key records fetched from a directory.
type KeyRecordFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewKeyRecordFileStore returns a KeyRecordFileStore rooted at dir.
func NewKeyRecordFileStore(dir string) *KeyRecordFileStore {
	return &KeyRecordFileStore{dir: dir}
}

// SaveKeyRecord stores or replaces the record for record.Username.
func (s *KeyRecordFileStore) SaveKeyRecord(record domain.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, knownKeysFile)
	records := map[domain.Username]domain.KeyRecord{}
	if err := readJSON(path, &records); err != nil {
		return err
	}
	records[record.Username] = record
	return writeJSON(path, records, 0o600)
}

// LoadKeyRecord returns the cached record for username and whether it was present.
func (s *KeyRecordFileStore) LoadKeyRecord(username domain.Username) (domain.KeyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, knownKeysFile)
	records := map[domain.Username]domain.KeyRecord{}
	if err := readJSON(path, &records); err != nil {
		return domain.KeyRecord{}, false, err
	}
	record, ok := records[username]
	return record, ok, nil
}

// Compile-time assertion that KeyRecordFileStore implements domain.KeyRecordStore.
var _ domain.KeyRecordStore = (*KeyRecordFileStore)(nil)
