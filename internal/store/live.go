// Package store persists the bot's durable state under the data directory.
// The JSON file formats predate this process and are shared with external
// tooling, so field names and layouts are fixed.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"govtrader/internal/types"
)

const liveFile = "proposal_post_live.json"

// LiveStore holds the open positions as a JSON object keyed by trade id.
// Every mutation rewrites the whole snapshot through a temp-file rename so a
// crash mid-write never corrupts the file.
type LiveStore struct {
	mu   sync.Mutex
	path string
}

func NewLiveStore(dataDir string) *LiveStore {
	return &LiveStore{path: filepath.Join(dataDir, liveFile)}
}

// Init writes an empty snapshot unless the file already exists.
func (s *LiveStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return s.write(map[string]types.TradeRecord{})
}

// All returns the full live snapshot.
func (s *LiveStore) All() (map[string]types.TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Put inserts or replaces the record under its trade id.
func (s *LiveStore) Put(tradeID string, rec types.TradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, err := s.read()
	if err != nil {
		return err
	}
	live[tradeID] = rec
	return s.write(live)
}

// Remove drops the record. Removing an absent id is not an error.
func (s *LiveStore) Remove(tradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := live[tradeID]; !ok {
		return nil
	}
	delete(live, tradeID)
	return s.write(live)
}

// Count reports how many positions are still open. Records soft-closed by
// reconciliation stay in the file but no longer count against the cap.
func (s *LiveStore) Count() (int, error) {
	live, err := s.All()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, rec := range live {
		if rec.Open() {
			n++
		}
	}
	return n, nil
}

// HasCoin reports whether an open position exists on the given coin.
func (s *LiveStore) HasCoin(coin string) (bool, error) {
	live, err := s.All()
	if err != nil {
		return false, err
	}
	for _, rec := range live {
		if rec.Open() && rec.Coin == coin {
			return true, nil
		}
	}
	return false, nil
}

// HasPostID reports whether any live position came from the given post.
func (s *LiveStore) HasPostID(postID string) (bool, error) {
	live, err := s.All()
	if err != nil {
		return false, err
	}
	for _, rec := range live {
		if rec.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (s *LiveStore) read() (map[string]types.TradeRecord, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]types.TradeRecord{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", liveFile, err)
	}
	live := map[string]types.TradeRecord{}
	if err := json.Unmarshal(raw, &live); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", liveFile, err)
	}
	return live, nil
}

func (s *LiveStore) write(live map[string]types.TradeRecord) error {
	raw, err := json.MarshalIndent(live, "", "    ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", liveFile, err)
	}
	return atomicWrite(s.path, raw)
}

// atomicWrite lands data at path via a same-directory temp file and rename.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: temp file for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: rename into %s: %w", path, err)
	}
	return nil
}
