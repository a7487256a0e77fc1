package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// CatalogBackend defines the interface for durable catalog storage.
// Two records live behind it: the full catalog collection and the admin
// session flag, each under its own fixed key.
type CatalogBackend interface {
	// LoadCatalog reads the persisted collection. The outcome distinguishes
	// an absent record from a corrupt one; in both cases the returned slice
	// is nil and the caller decides the fallback.
	LoadCatalog() ([]Video, LoadOutcome, error)

	// SaveCatalog re-serializes the entire collection. Write failures are
	// returned, never swallowed.
	SaveCatalog(videos []Video) error

	// LoadSession reports whether a persisted session record holds the
	// exact active literal.
	LoadSession() (bool, error)

	// SaveSession writes the active session record.
	SaveSession() error

	// ClearSession removes the session record. Removing an absent record
	// is not an error.
	ClearSession() error

	// Close closes the backend.
	Close() error
}

// BadgerCatalogBackend persists the catalog in a local BadgerDB directory.
type BadgerCatalogBackend struct {
	db     *badger.DB
	dbPath string
	logger *log.Logger
	mu     sync.RWMutex
}

// NewBadgerCatalogBackend opens (or creates) the catalog database.
func NewBadgerCatalogBackend(dirPath string, logger *log.Logger) (*BadgerCatalogBackend, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	opts := badger.DefaultOptions(dirPath).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	logger.Printf("Opened catalog database at %s", dirPath)
	return &BadgerCatalogBackend{
		db:     db,
		dbPath: dirPath,
		logger: logger,
	}, nil
}

// LoadCatalog reads and decodes the catalog record.
func (b *BadgerCatalogBackend) LoadCatalog() ([]Video, LoadOutcome, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(CatalogKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, LoadEmpty, nil
	}
	if err != nil {
		return nil, LoadEmpty, fmt.Errorf("failed to read catalog record: %w", err)
	}

	var videos []Video
	if err := json.Unmarshal(raw, &videos); err != nil {
		b.logger.Printf("Warning: catalog record is corrupt, discarding: %v", err)
		return nil, LoadCorrupt, nil
	}
	return videos, LoadOK, nil
}

// SaveCatalog writes the full collection under the catalog key.
func (b *BadgerCatalogBackend) SaveCatalog(videos []Video) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(CatalogKey), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write catalog record: %w", err)
	}
	return nil
}

// LoadSession reads the session record.
func (b *BadgerCatalogBackend) LoadSession() (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SessionKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session record: %w", err)
	}

	// Anything other than the exact literal counts as unauthenticated.
	return string(raw) == SessionActiveValue, nil
}

// SaveSession writes the active session literal.
func (b *BadgerCatalogBackend) SaveSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(SessionKey), []byte(SessionActiveValue))
	})
	if err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}

// ClearSession removes the session record.
func (b *BadgerCatalogBackend) ClearSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(SessionKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}

// Close closes the BadgerDB instance.
func (b *BadgerCatalogBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// MemoryCatalogBackend keeps both records in memory. It backs ephemeral
// runs and tests that don't need an on-disk database.
type MemoryCatalogBackend struct {
	mu      sync.RWMutex
	catalog []byte
	session []byte

	// SaveErr, when set, is returned from every write. Lets callers
	// exercise the storage-write failure path.
	SaveErr error
}

// NewMemoryCatalogBackend creates an empty in-memory backend.
func NewMemoryCatalogBackend() *MemoryCatalogBackend {
	return &MemoryCatalogBackend{}
}

func (m *MemoryCatalogBackend) LoadCatalog() ([]Video, LoadOutcome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, LoadEmpty, nil
	}
	var videos []Video
	if err := json.Unmarshal(m.catalog, &videos); err != nil {
		return nil, LoadCorrupt, nil
	}
	return videos, LoadOK, nil
}

func (m *MemoryCatalogBackend) SaveCatalog(videos []Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	m.catalog = data
	return nil
}

func (m *MemoryCatalogBackend) LoadSession() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return string(m.session) == SessionActiveValue, nil
}

func (m *MemoryCatalogBackend) SaveSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.session = []byte(SessionActiveValue)
	return nil
}

func (m *MemoryCatalogBackend) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.session = nil
	return nil
}

func (m *MemoryCatalogBackend) Close() error {
	return nil
}

// SetRawCatalog overwrites the stored catalog record with arbitrary bytes,
// bypassing serialization. Used to simulate a corrupt or legacy record.
func (m *MemoryCatalogBackend) SetRawCatalog(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = raw
}

// NewCatalogBackend factory function that returns the appropriate backend
// based on configuration. An empty data dir selects the in-memory backend.
func NewCatalogBackend(cfg *Config, logger *log.Logger) (CatalogBackend, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg == nil || cfg.DataDir == "" {
		logger.Printf("No data dir configured, catalog is in-memory only")
		return NewMemoryCatalogBackend(), nil
	}
	return NewBadgerCatalogBackend(cfg.DataDir+"/"+DefaultDBDir, logger)
}
