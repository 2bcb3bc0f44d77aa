// Package mirror synthesizes INR counter-trades for non-INR-quoted rows of a
// resolved trade table.
//
// Each non-INR row produces one derived row: the market rewritten to
// {QUOTE}INR, the trade direction flipped, the quantity kept (it is
// asset-denominated and does not change when re-quoting against a different
// fiat pair) and price/total rescaled by the USD-INR rate when the sheet
// supplies one. Derived rows are appended to the originals, never merged
// into them; the combined set is date-sorted when every date parses.
//
// The transformation is a pure function of (table, mapping): no state is
// shared between invocations, so concurrent use is safe.
package mirror
