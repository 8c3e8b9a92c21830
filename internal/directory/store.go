package directory

import (
	"errors"
	"sync"

	"ristkey/internal/domain"
)

// ErrConflict is returned when a username is already bound to another key.
var ErrConflict = errors.New("username already registered with a different key")

// RecordStore persists key records. Insert is atomic per username.
type RecordStore interface {
	// Insert stores rec unless the username exists. It returns the stored
	// record and whether it was newly created, or ErrConflict when the
	// existing record holds a different key.
	Insert(rec domain.KeyRecord) (domain.KeyRecord, bool, error)
	Lookup(username domain.Username) (domain.KeyRecord, bool, error)
	Close() error
}

// MemoryStore keeps records in memory; they are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[domain.Username]domain.KeyRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[domain.Username]domain.KeyRecord)}
}

func (s *MemoryStore) Insert(rec domain.KeyRecord) (domain.KeyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[rec.Username]; ok {
		return resolveExisting(existing, rec)
	}
	s.records[rec.Username] = rec
	return rec, true, nil
}

func (s *MemoryStore) Lookup(username domain.Username) (domain.KeyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[username]
	return rec, ok, nil
}

func (s *MemoryStore) Close() error { return nil }

func resolveExisting(existing, rec domain.KeyRecord) (domain.KeyRecord, bool, error) {
	if existing.PublicKey != rec.PublicKey {
		return domain.KeyRecord{}, false, ErrConflict
	}
	return existing, false, nil
}

var _ RecordStore = (*MemoryStore)(nil)
