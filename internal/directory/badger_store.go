package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	badger "github.com/dgraph-io/badger/v2"

	"ristkey/internal/domain"
)

const recordKeyPrefix = "key/"

// maxInsertAttempts bounds retries of a registration that lost a write race.
// Once one writer commits, the others re-read the record and commit without writes.
const maxInsertAttempts = 8

// BadgerStore persists records in a badger database as JSON values.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a store in dir. An empty dir opens an
// in-memory database.
func OpenBadgerStore(dir string, logger *log.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

func recordKey(username domain.Username) []byte {
	return []byte(recordKeyPrefix + username.String())
}

func (s *BadgerStore) Insert(rec domain.KeyRecord) (domain.KeyRecord, bool, error) {
	var (
		stored  domain.KeyRecord
		created bool
	)
	insert := func(txn *badger.Txn) error {
		stored, created = domain.KeyRecord{}, false
		existing, ok, err := getRecord(txn, rec.Username)
		if err != nil {
			return err
		}
		if ok {
			stored, created, err = resolveExisting(existing, rec)
			return err
		}
		val, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := txn.Set(recordKey(rec.Username), val); err != nil {
			return err
		}
		stored, created = rec, true
		return nil
	}

	var err error
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		err = s.db.Update(insert)
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return domain.KeyRecord{}, false, err
	}
	return stored, created, nil
}

func (s *BadgerStore) Lookup(username domain.Username) (domain.KeyRecord, bool, error) {
	var (
		rec domain.KeyRecord
		ok  bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, ok, err = getRecord(txn, username)
		return err
	})
	return rec, ok, err
}

func (s *BadgerStore) Close() error { return s.db.Close() }

// getRecord decodes the stored value; the public key is re-validated by the codec.
func getRecord(txn *badger.Txn, username domain.Username) (domain.KeyRecord, bool, error) {
	item, err := txn.Get(recordKey(username))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.KeyRecord{}, false, nil
	}
	if err != nil {
		return domain.KeyRecord{}, false, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return domain.KeyRecord{}, false, err
	}
	var rec domain.KeyRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return domain.KeyRecord{}, false, fmt.Errorf("record %q: %w", username, err)
	}
	return rec, true, nil
}

// badgerLogger routes badger's leveled output to a stdlib logger.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(f string, v ...interface{})   { b.l.Printf("[badger] ERROR "+f, v...) }
func (b badgerLogger) Warningf(f string, v ...interface{}) { b.l.Printf("[badger] WARN "+f, v...) }
func (b badgerLogger) Infof(f string, v ...interface{})    { b.l.Printf("[badger] INFO "+f, v...) }
func (b badgerLogger) Debugf(string, ...interface{})       {}

var _ RecordStore = (*BadgerStore)(nil)
