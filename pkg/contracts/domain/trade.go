package domain

import "strings"

// TradeSide represents the direction of a trade. Sides other than BUY and
// SELL are preserved verbatim (uppercased) rather than rejected.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// ParseTradeSide normalizes a raw trade type cell into a TradeSide.
func ParseTradeSide(raw string) TradeSide {
	return TradeSide(strings.ToUpper(strings.TrimSpace(raw)))
}

// Flip inverts the trade direction. BUY and SELL swap; any other side is
// returned unchanged because there is no meaningful counter-direction.
func (s TradeSide) Flip() TradeSide {
	switch s {
	case TradeSideBuy:
		return TradeSideSell
	case TradeSideSell:
		return TradeSideBuy
	default:
		return s
	}
}

// String implements fmt.Stringer.
func (s TradeSide) String() string {
	return string(s)
}
