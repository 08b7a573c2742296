package dedup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	// prune at most weekly, keep the most recent maxEntries ids
	cleanupInterval = 7 * 24 * time.Hour
	maxEntries      = 1000
)

// storeDoc is the on-disk layout of the sent-jobs file.
type storeDoc struct {
	IDs         []string `json:"ids"`
	LastCleanup int64    `json:"last_cleanup"`
}

// FileStore persists the sent-job set as a single JSON file.
// A missing file means "no jobs notified yet", never an error.
type FileStore struct {
	mu          sync.Mutex
	path        string
	ids         mapset.Set[string]
	order       []string // insertion order, oldest first, for pruning
	lastCleanup int64
	dirty       bool
	now         func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		ids:  mapset.NewSet[string](),
		now:  time.Now,
	}
}

// Load reads the persisted id set. A missing file yields an empty set
// and no error. A corrupt file is reported so the caller can warn and
// proceed with an empty set; it is never fatal here.
func (s *FileStore) Load(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc storeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}

	for _, id := range doc.IDs {
		if s.ids.Add(id) {
			s.order = append(s.order, id)
		}
	}
	s.lastCleanup = doc.LastCleanup
	return nil
}

func (s *FileStore) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.Contains(id)
}

func (s *FileStore) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids.Add(id) {
		s.order = append(s.order, id)
		s.dirty = true
	}
}

func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids.Cardinality()
}

// Save durably persists the current set, write-to-temp-then-rename so
// a crash mid-write never corrupts the previous snapshot. A no-op when
// nothing changed since the last save.
func (s *FileStore) Save(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	s.pruneLocked()

	doc := storeDoc{IDs: s.order, LastCleanup: s.lastCleanup}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sent jobs: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	s.dirty = false
	return nil
}

// pruneLocked drops the oldest ids once the set outgrows maxEntries,
// at most once per cleanupInterval. Caller holds the lock.
func (s *FileStore) pruneLocked() {
	now := s.now().Unix()
	if now-s.lastCleanup < int64(cleanupInterval.Seconds()) {
		return
	}
	if len(s.order) > maxEntries {
		for _, id := range s.order[:len(s.order)-maxEntries] {
			s.ids.Remove(id)
		}
		s.order = append([]string(nil), s.order[len(s.order)-maxEntries:]...)
	}
	s.lastCleanup = now
}
