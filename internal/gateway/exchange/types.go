package exchange

import (
	"github.com/shopspring/decimal"

	"govtrader/internal/types"
)

// OrderResult describes a fully placed three-leg position: the filled market
// entry plus its protective stop and take-profit orders.
type OrderResult struct {
	Symbol          string
	Side            types.Side
	Quantity        decimal.Decimal
	EntryPrice      decimal.Decimal
	EntryOrderID    string
	StopLossPrice   decimal.Decimal
	StopLossOrderID string
	TargetPrice     decimal.Decimal
	TargetOrderID   string
}

// OpenPosition is one nonzero position as the exchange reports it.
type OpenPosition struct {
	Symbol   string
	Quantity decimal.Decimal
}

type OrderStatus string

const (
	OrderStatusResting OrderStatus = "resting"
	OrderStatusGone    OrderStatus = "gone"
)
