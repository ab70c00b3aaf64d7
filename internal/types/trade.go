package types

type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

type TradeStatus string

const (
	StatusUnsold TradeStatus = "unsold"
	StatusSold   TradeStatus = "sold"
)

// TradeRecord is the persisted state of one leveraged position tied to a
// proposal. JSON field names are fixed: live snapshots written by earlier
// deployments must stay readable.
type TradeRecord struct {
	Coin            string      `json:"coin"`
	PostID          string      `json:"post_id"`
	Description     string      `json:"description"`
	BuyingPrice     float64     `json:"buying_price"`
	BuyingTime      string      `json:"buying_time"`
	StopLossPrice   float64     `json:"stop_loss_price"`
	Side            Side        `json:"type"`
	StopLossOrderID string      `json:"stop_loss_id"`
	TargetOrderID   string      `json:"target_order_id"`
	TargetPrice     float64     `json:"target_price"`
	Status          TradeStatus `json:"status"`
}

// Open reports whether the record still represents a live position.
func (r TradeRecord) Open() bool {
	return r.Status == StatusUnsold
}
