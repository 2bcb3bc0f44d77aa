package domain

import (
	"strconv"
	"strings"
)

// Numeric is a best-effort parsed cell value: either a float or a missing
// marker. Coercion failures become missing values instead of errors so that
// batch processing stays resilient to partial bad data.
type Numeric struct {
	Value float64
	Valid bool
}

// ParseNumeric coerces a raw cell into a Numeric. Thousands separators are
// stripped the way spreadsheet exports commonly format large figures.
// Empty or non-numeric input yields a missing value, never an error.
func ParseNumeric(raw string) Numeric {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return Numeric{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Numeric{}
	}
	return Numeric{Value: v, Valid: true}
}

// Mul multiplies two numerics. The result is missing when either operand is.
func (n Numeric) Mul(o Numeric) Numeric {
	if !n.Valid || !o.Valid {
		return Numeric{}
	}
	return Numeric{Value: n.Value * o.Value, Valid: true}
}

// Cell formats the numeric back into a spreadsheet cell. Missing values
// render as an empty cell.
func (n Numeric) Cell() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}
