package mirror

import (
	"github.com/Vikash02022000/FinSight/pkg/contracts/domain"
)

// converter implements the per-row conversion policy: rescale price and
// total into INR when an exact conversion is possible, and record the
// degradation when it is not.
type converter struct {
	priceIdx int
	totalIdx int
	// rateIdx is -1 when the sheet has no USD-INR rate column, in which case
	// conversion is skipped entirely and mirrored price/total stay as the
	// original (wrong-currency) values.
	rateIdx int

	degraded bool
}

func newConverter(priceIdx, totalIdx, rateIdx int) *converter {
	return &converter{priceIdx: priceIdx, totalIdx: totalIdx, rateIdx: rateIdx}
}

// enabled reports whether a rate column is bound at all.
func (c *converter) enabled() bool {
	return c.rateIdx >= 0
}

// convertRow rescales the mirrored row's price and total in place. Cells
// that fail numeric coercion become empty (missing) cells; the batch keeps
// going and the failure surfaces once as a warning.
func (c *converter) convertRow(row []string) {
	if !c.enabled() {
		return
	}

	rate := domain.ParseNumeric(row[c.rateIdx])
	price := domain.ParseNumeric(row[c.priceIdx]).Mul(rate)
	total := domain.ParseNumeric(row[c.totalIdx]).Mul(rate)

	if !price.Valid || !total.Valid {
		c.degraded = true
	}

	row[c.priceIdx] = price.Cell()
	row[c.totalIdx] = total.Cell()
	// The mirrored row is INR-denominated now, so its own rate is 1.
	row[c.rateIdx] = "1"
}
