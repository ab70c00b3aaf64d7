// Package symbol maps governance coin names onto Binance USDT-margined
// futures symbols and carries the per-symbol order precision rules the
// exchange enforces.
package symbol

import "strings"

// Table resolves coin names (as they appear in post ids, e.g. "uniswap") to
// exchange symbols, and symbols to their quantity precision.
type Table struct {
	coins     map[string]string
	precision map[string]int32
}

// defaultCoins covers the protocols the proposal feed is known to emit.
var defaultCoins = map[string]string{
	"uniswap":  "UNIUSDT",
	"aave":     "AAVEUSDT",
	"compound": "COMPUSDT",
	"curve":    "CRVUSDT",
	"maker":    "MKRUSDT",
	"lido":     "LDOUSDT",
	"arbitrum": "ARBUSDT",
	"optimism": "OPUSDT",
	"sushi":    "SUSHIUSDT",
	"balancer": "BALUSDT",
	"pancake":  "CAKEUSDT",
	"gmx":      "GMXUSDT",
	"dydx":     "DYDXUSDT",
	"ens":      "ENSUSDT",
	"apecoin":  "APEUSDT",
}

// defaultPrecision is the exchange's LOT_SIZE step expressed as decimal
// places of quantity. Orders with finer quantities get rejected, so these
// must match the exchange filters exactly.
var defaultPrecision = map[string]int32{
	"UNIUSDT":   0,
	"AAVEUSDT":  1,
	"COMPUSDT":  3,
	"CRVUSDT":   1,
	"MKRUSDT":   3,
	"LDOUSDT":   0,
	"ARBUSDT":   1,
	"OPUSDT":    1,
	"SUSHIUSDT": 0,
	"BALUSDT":   1,
	"CAKEUSDT":  0,
	"GMXUSDT":   2,
	"DYDXUSDT":  1,
	"ENSUSDT":   1,
	"APEUSDT":   0,
}

func NewTable() *Table {
	return &Table{coins: defaultCoins, precision: defaultPrecision}
}

// NewTableWith overlays custom mappings onto the defaults. Used when the
// deployment trades symbols the built-in table does not know.
func NewTableWith(coins map[string]string, precision map[string]int32) *Table {
	t := &Table{
		coins:     make(map[string]string, len(defaultCoins)+len(coins)),
		precision: make(map[string]int32, len(defaultPrecision)+len(precision)),
	}
	for k, v := range defaultCoins {
		t.coins[k] = v
	}
	for k, v := range coins {
		t.coins[normalizeCoin(k)] = strings.ToUpper(strings.TrimSpace(v))
	}
	for k, v := range defaultPrecision {
		t.precision[k] = v
	}
	for k, v := range precision {
		t.precision[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return t
}

// Symbol resolves a coin name to its futures symbol. The second return is
// false for coins the table does not trade.
func (t *Table) Symbol(coin string) (string, bool) {
	sym, ok := t.coins[normalizeCoin(coin)]
	return sym, ok
}

// QuantityPrecision returns the decimal places allowed for order quantity on
// a symbol. Unknown symbols fall back to whole units, the coarsest step.
func (t *Table) QuantityPrecision(sym string) int32 {
	if p, ok := t.precision[strings.ToUpper(strings.TrimSpace(sym))]; ok {
		return p
	}
	return 0
}

func normalizeCoin(coin string) string {
	return strings.ToLower(strings.TrimSpace(coin))
}
