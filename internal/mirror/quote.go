package mirror

import "strings"

// knownQuotes are tested in priority order when a market symbol has no dash
// separator. Order matters: USDT must be tried before USD or "BTC-USDT"
// style concatenations like "BTCUSDT" would resolve to the wrong quote.
var knownQuotes = []string{"USDT", "BUSD", "USD", "ETH", "BTC", "INR"}

// ExtractQuote returns the quote currency of a market symbol.
//
// "ASSET-QUOTE" symbols split on the last dash. Dashless symbols are matched
// against the known quote suffixes; when none match, the last three
// characters are returned. The 3-char fallback can produce a nonsensical
// token for malformed symbols; that is the documented behavior, not an
// error.
func ExtractQuote(market string) string {
	s := strings.ToUpper(strings.TrimSpace(market))
	if i := strings.LastIndex(s, "-"); i >= 0 {
		return s[i+1:]
	}
	for _, q := range knownQuotes {
		if strings.HasSuffix(s, q) {
			return q
		}
	}
	if len(s) <= 3 {
		return s
	}
	return s[len(s)-3:]
}

// isINRQuoted reports whether a market symbol is already quoted in INR.
// INR-native rows pass through unchanged and are never mirrored.
func isINRQuoted(market string) bool {
	return strings.HasSuffix(strings.ToUpper(strings.TrimSpace(market)), "INR")
}
