package binance

import "github.com/shopspring/decimal"

var (
	tierLow  = decimal.NewFromInt(10)
	tierMid  = decimal.NewFromInt(50)
	safety   = decimal.NewFromFloat(0.95)
	hundred = decimal.NewFromInt(100)
)

// pricePrecision picks the decimal places for stop/target prices by price
// magnitude. The tiers must match what the exchange accepts per price band:
// <=10 two places, <=50 one place, above that whole numbers.
func pricePrecision(price decimal.Decimal) int32 {
	switch {
	case price.LessThanOrEqual(tierLow):
		return 2
	case price.LessThanOrEqual(tierMid):
		return 1
	default:
		return 0
	}
}

// roundToEntryTier rounds a derived price with the ENTRY price's tier, not
// its own. A stop 2% below an entry of 10.15 rounds at the entry's one
// place (9.9), even though the stop itself sits in the two-place band.
func roundToEntryTier(price, entry decimal.Decimal) decimal.Decimal {
	return price.Round(pricePrecision(entry))
}

// positionQuantity sizes the position: 95% of notional x leverage at the
// current price, floored to the symbol's quantity precision. Flooring, not
// rounding: we must never order more than the margin covers.
func positionQuantity(tradeAmount float64, leverage int, price decimal.Decimal, qtyPrecision int32) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	notional := decimal.NewFromFloat(tradeAmount).Mul(decimal.NewFromInt(int64(leverage)))
	return notional.Mul(safety).Div(price).RoundFloor(qtyPrecision)
}

// stopLossPrice is entry minus (long) or plus (short) the configured percent.
func stopLossPrice(entry decimal.Decimal, stopLossPercent float64, long bool) decimal.Decimal {
	delta := entry.Mul(decimal.NewFromFloat(stopLossPercent)).Div(hundred)
	if long {
		return roundToEntryTier(entry.Sub(delta), entry)
	}
	return roundToEntryTier(entry.Add(delta), entry)
}

// targetPrice is entry plus (long) or minus (short) the target fraction of
// entry. The fraction's sign is ignored; direction comes from the side.
func targetPrice(entry decimal.Decimal, targetFraction float64, long bool) decimal.Decimal {
	delta := entry.Mul(decimal.NewFromFloat(targetFraction).Abs())
	if long {
		return roundToEntryTier(entry.Add(delta), entry)
	}
	return roundToEntryTier(entry.Sub(delta), entry)
}
