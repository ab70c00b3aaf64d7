package store

import (
	"fmt"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"govtrader/internal/types"
)

const analyticsFile = "trades.db"

// TradeSnapshot is the analytics row written when a trade opens. It mirrors
// the fields the evaluation tooling expects, one row per opened trade.
type TradeSnapshot struct {
	ID             uint      `gorm:"primaryKey"`
	TradeID        string    `gorm:"index"`
	PostID         string    `gorm:"index"`
	Coin           string    `gorm:"index"`
	Description    string
	SentimentScore float64
	EntryPrice     float64
	OpenedAt       time.Time
	CreatedAt      time.Time
}

// ClosedTrade archives a position after reconciliation marks it sold.
type ClosedTrade struct {
	ID          uint   `gorm:"primaryKey"`
	TradeID     string `gorm:"index"`
	PostID      string
	Coin        string `gorm:"index"`
	Side        string
	EntryPrice  float64
	StopPrice   float64
	TargetPrice float64
	OpenedAt    string
	ClosedAt    time.Time
	CreatedAt   time.Time
}

// Analytics is the local SQLite archive. Every write is best-effort from
// the caller's point of view; a broken archive must never block trading.
type Analytics struct {
	db *gorm.DB
}

func OpenAnalytics(dataDir string) (*Analytics, error) {
	path := filepath.Join(dataDir, analyticsFile)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open analytics db: %w", err)
	}
	if err := db.AutoMigrate(&TradeSnapshot{}, &ClosedTrade{}); err != nil {
		return nil, fmt.Errorf("store: migrate analytics db: %w", err)
	}
	return &Analytics{db: db}, nil
}

// SaveSnapshot records an opened trade.
func (a *Analytics) SaveSnapshot(snap TradeSnapshot) error {
	if err := a.db.Create(&snap).Error; err != nil {
		return fmt.Errorf("store: save trade snapshot: %w", err)
	}
	return nil
}

// ArchiveClosed records a reconciled trade.
func (a *Analytics) ArchiveClosed(tradeID string, rec types.TradeRecord, closedAt time.Time) error {
	row := ClosedTrade{
		TradeID:     tradeID,
		PostID:      rec.PostID,
		Coin:        rec.Coin,
		Side:        string(rec.Side),
		EntryPrice:  rec.BuyingPrice,
		StopPrice:   rec.StopLossPrice,
		TargetPrice: rec.TargetPrice,
		OpenedAt:    rec.BuyingTime,
		ClosedAt:    closedAt,
	}
	if err := a.db.Create(&row).Error; err != nil {
		return fmt.Errorf("store: archive closed trade: %w", err)
	}
	return nil
}

// ClosedCount reports how many trades the archive holds.
func (a *Analytics) ClosedCount() (int64, error) {
	var n int64
	if err := a.db.Model(&ClosedTrade{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("store: count closed trades: %w", err)
	}
	return n, nil
}
