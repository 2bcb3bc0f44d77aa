package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	assert.Equal(t, Numeric{Value: 1234.5, Valid: true}, ParseNumeric("1,234.5"))
	assert.Equal(t, Numeric{Value: -3, Valid: true}, ParseNumeric(" -3 "))
	assert.False(t, ParseNumeric("").Valid)
	assert.False(t, ParseNumeric("n/a").Valid)
}

func TestNumericMul(t *testing.T) {
	a := ParseNumeric("50000")
	rate := ParseNumeric("83")
	assert.Equal(t, "4150000", a.Mul(rate).Cell())

	missing := ParseNumeric("oops")
	assert.False(t, a.Mul(missing).Valid)
	assert.Equal(t, "", a.Mul(missing).Cell())
}

func TestTradeSideFlip(t *testing.T) {
	assert.Equal(t, TradeSideSell, ParseTradeSide(" buy ").Flip())
	assert.Equal(t, TradeSideBuy, ParseTradeSide("SELL").Flip())
	assert.Equal(t, TradeSide("TRANSFER"), ParseTradeSide("Transfer").Flip())
}
