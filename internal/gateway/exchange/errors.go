package exchange

import "fmt"

// MarketDataError wraps a failed price read. No built-in retry at this
// layer; the caller decides whether to retry or abort.
type MarketDataError struct {
	Symbol string
	Err    error
}

func (e *MarketDataError) Error() string {
	return fmt.Sprintf("market data for %s: %v", e.Symbol, e.Err)
}

func (e *MarketDataError) Unwrap() error { return e.Err }

// PositionFetchError means the open-position list could not be retrieved
// even after the full retry budget.
type PositionFetchError struct {
	Attempts int
	Err      error
}

func (e *PositionFetchError) Error() string {
	return fmt.Sprintf("position fetch failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *PositionFetchError) Unwrap() error { return e.Err }

// OrderLeg identifies which leg of a multi-leg placement failed.
type OrderLeg string

const (
	LegEntry    OrderLeg = "entry"
	LegStopLoss OrderLeg = "stop_loss"
	LegTarget   OrderLeg = "target"
)

// OrderPlacementError carries the partial state of a multi-leg placement.
// EntryFilled with RolledBack=false is the dangerous case: an economically
// live position without full protection.
type OrderPlacementError struct {
	Symbol       string
	Leg          OrderLeg
	EntryFilled  bool
	EntryOrderID string
	RolledBack   bool
	Err          error
}

func (e *OrderPlacementError) Error() string {
	return fmt.Sprintf("order placement on %s failed at %s leg (entry_filled=%v rolled_back=%v): %v",
		e.Symbol, e.Leg, e.EntryFilled, e.RolledBack, e.Err)
}

func (e *OrderPlacementError) Unwrap() error { return e.Err }
