package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gallery/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPages = []byte("pages")
	bucketMeta  = []byte("meta")
)

// ErrNoLimit is returned when saving a page that does not carry its page size.
var ErrNoLimit = errors.New("page has no limit")

// PageStore implements domain.PageStore using BoltDB.
type PageStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewPageStore opens the page cache for the given API. An empty
// baseCacheDir keeps everything in memory.
func NewPageStore(baseCacheDir, baseURL string) (*PageStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &PageStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if baseURL != "" {
		dir = filepath.Join(baseCacheDir, hashBaseURL(baseURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "gallery.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPages, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PageStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashBaseURL(baseURL string) string {
	normalized := strings.TrimRight(strings.ToLower(baseURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *PageStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// pageKey is "page:{limit}:{page}"; the same page number holds different
// records at different limits.
func pageKey(page, limit int) string {
	return fmt.Sprintf("page:%d:%d", limit, page)
}

func tsKey(page, limit int) string {
	return pageKey(page, limit) + ":ts"
}

// === Generic helpers ===

func (s *PageStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
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
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *PageStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *PageStore) delete(bucket []byte, key string) {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Pages ===

func (s *PageStore) GetPage(page, limit int) (*domain.Page, bool) {
	var p domain.Page
	if !s.get(bucketPages, pageKey(page, limit), &p) {
		return nil, false
	}
	return &p, true
}

// SavePage stores p under its number and limit along with the fetch time.
func (s *PageStore) SavePage(p *domain.Page, fetchedAt time.Time) error {
	if p == nil {
		return errors.New("nil page")
	}
	limit := p.Pagination.Limit
	if limit <= 0 {
		return ErrNoLimit
	}
	if err := s.set(bucketPages, pageKey(p.Number, limit), p); err != nil {
		return err
	}
	// Timestamp lives in its own bucket so freshness checks skip the page body
	return s.set(bucketMeta, tsKey(p.Number, limit), fetchedAt.UnixNano())
}

func (s *PageStore) FetchedAt(page, limit int) (time.Time, bool) {
	var ts int64
	if !s.get(bucketMeta, tsKey(page, limit), &ts) {
		return time.Time{}, false
	}
	return time.Unix(0, ts), true
}

// === Invalidation ===

func (s *PageStore) InvalidatePage(page, limit int) {
	s.delete(bucketPages, pageKey(page, limit))
	s.delete(bucketMeta, tsKey(page, limit))
}

func (s *PageStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPages, bucketMeta} {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
