package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const priceCheckFile = "price_check.json"

// PriceCheckEntry schedules a five-day lookback on an opened trade. Field
// names and the date-only format of TimeAfter5Days are consumed by the
// offline evaluation scripts.
type PriceCheckEntry struct {
	TimeAfter5Days string  `json:"time_after_5_days"`
	CoinName       string  `json:"coin_name"`
	InitialTime    string  `json:"initial_time"`
	TradeID        string  `json:"trade_id"`
	InitialPrice   float64 `json:"initial_price"`
}

// PriceCheckStore appends entries to a JSON array on disk.
type PriceCheckStore struct {
	mu   sync.Mutex
	path string
}

func NewPriceCheckStore(dataDir string) *PriceCheckStore {
	return &PriceCheckStore{path: filepath.Join(dataDir, priceCheckFile)}
}

// Init writes an empty array unless the file already exists.
func (s *PriceCheckStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return atomicWrite(s.path, []byte("[]"))
}

// Record appends one lookback entry for a trade opened now.
func (s *PriceCheckStore) Record(tradeID, coin string, openedAt time.Time, price float64) error {
	entry := PriceCheckEntry{
		TimeAfter5Days: openedAt.Add(5 * 24 * time.Hour).Format("2006-01-02"),
		CoinName:       coin,
		InitialTime:    openedAt.Format("2006-01-02 15:04:05"),
		TradeID:        tradeID,
		InitialPrice:   price,
	}
	return s.Append(entry)
}

// Append adds the entry to the array, creating the file if needed.
func (s *PriceCheckStore) Append(entry PriceCheckEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", priceCheckFile, err)
	}
	return atomicWrite(s.path, raw)
}

// All returns every recorded entry.
func (s *PriceCheckStore) All() ([]PriceCheckEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *PriceCheckStore) read() ([]PriceCheckEntry, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", priceCheckFile, err)
	}
	var entries []PriceCheckEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", priceCheckFile, err)
	}
	return entries, nil
}
