package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketWatchlists = []byte("watchlists")

// ListStore implements domain.Store using BoltDB. Saved lists are stored as
// JSON under a per-kind key.
type ListStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewListStore opens (or creates) the database under dataDir. An empty
// dataDir yields a memory-only store with no persistence, used in tests.
func NewListStore(dataDir string) (*ListStore, error) {
	if dataDir == "" {
		return &ListStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "shelf.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWatchlists)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ListStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *ListStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *ListStore) get(key string, dest interface{}) bool {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWatchlists)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	// A value that fails to decode is treated as absent
	return json.Unmarshal(data, dest) == nil
}

func (s *ListStore) set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWatchlists)
		return b.Put([]byte(key), data)
	})
}

// === Saved lists ===

// LoadList returns the saved list for a catalog. ok is false when nothing is
// stored or the stored value is malformed.
func (s *ListStore) LoadList(kind domain.Kind) ([]domain.CatalogItem, bool) {
	var items []domain.CatalogItem
	ok := s.get(string(kind), &items)
	return items, ok
}

// SaveList persists the full list for a catalog (write-through, no batching).
func (s *ListStore) SaveList(kind domain.Kind, items []domain.CatalogItem) error {
	return s.set(string(kind), items)
}
