package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const historyFile = "proposal_post_id.json"

// HistoryStore remembers every post id the bot has ever evaluated, as a flat
// JSON list. A post in history is never acted on again even across restarts.
type HistoryStore struct {
	mu   sync.Mutex
	path string
	seen map[string]struct{}
	ids  []string
}

func NewHistoryStore(dataDir string) *HistoryStore {
	return &HistoryStore{path: filepath.Join(dataDir, historyFile)}
}

// Init writes an empty list unless the file already exists.
func (s *HistoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return atomicWrite(s.path, []byte("[]"))
}

// Load reads the list into memory. A missing file means empty history.
func (s *HistoryStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen = map[string]struct{}{}
	s.ids = nil

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: read %s: %w", historyFile, err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("store: parse %s: %w", historyFile, err)
	}
	for _, id := range ids {
		if _, dup := s.seen[id]; dup {
			continue
		}
		s.seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return nil
}

// Seen reports whether the post id has been evaluated before.
func (s *HistoryStore) Seen(postID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[postID]
	return ok
}

// Add records the post id and flushes the list. Adding a known id is a
// no-op.
func (s *HistoryStore) Add(postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[postID]; ok {
		return nil
	}
	s.seen[postID] = struct{}{}
	s.ids = append(s.ids, postID)

	raw, err := json.MarshalIndent(s.ids, "", "    ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", historyFile, err)
	}
	return atomicWrite(s.path, raw)
}

// Len returns the number of remembered post ids.
func (s *HistoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
