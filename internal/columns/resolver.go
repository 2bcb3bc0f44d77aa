// Package columns resolves the headers of an uploaded trade sheet to a fixed
// set of semantic roles. Header names vary between exchanges ("Trade Type",
// "side", "action", ...), so matching is exact-after-normalization over an
// ordered candidate list per role.
package columns

import (
	"fmt"
	"regexp"
	"strings"
)

// Role is a canonical semantic column name the mirroring engine relies on.
type Role string

const (
	RoleMarket    Role = "market"
	RoleDate      Role = "date"
	RoleTradeType Role = "trade_type"
	RoleQuantity  Role = "quantity"
	RolePrice     Role = "price"
	RoleTotal     Role = "total"

	// RoleUSDINR is optional: when unbound, mirrored price/total cannot be
	// converted and the engine degrades with a warning instead of failing.
	RoleUSDINR Role = "usd_inr"
)

// RequiredRoles lists the roles a sheet must bind before any transformation
// runs, in reporting order.
var RequiredRoles = []Role{RoleMarket, RoleDate, RoleTradeType, RoleQuantity, RolePrice, RoleTotal}

// candidates holds, per role, the header spellings accepted for that role in
// priority order. First candidate match wins, then first column left to
// right. Two different roles binding the same physical column is not
// detected; the earlier role silently wins (known ambiguity).
var candidates = map[Role][]string{
	RoleMarket:    {"market", "pair", "market_2"},
	RoleDate:      {"date", "trade date", "trade_date"},
	RoleTradeType: {"trade type", "trade_type", "side", "action"},
	RoleQuantity:  {"quantity", "qty", "totalvolume", "total_volume"},
	RolePrice:     {"price", "final price", "rate", "actualrate"},
	RoleTotal:     {"total", "amount", "total_inr", "gross_amount"},
	RoleUSDINR:    {"usd_inr_rate", "usd_inr", "usd-inr", "usd inr"},
}

var nonAlnum = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// Normalize reduces a header name to its canonical token: runs of characters
// outside [0-9a-zA-Z] collapse to a single underscore, edges are trimmed and
// the result is lowercased. Two names match iff they normalize identically.
func Normalize(name string) string {
	s := nonAlnum.ReplaceAllString(name, "_")
	return strings.ToLower(strings.Trim(s, "_"))
}

// Mapping binds roles to actual column names. Roles without a match are
// absent from the map. A Mapping is computed once per table and treated as
// immutable afterward.
type Mapping map[Role]string

// Column returns the actual header bound to the role.
func (m Mapping) Column(r Role) (string, bool) {
	c, ok := m[r]
	return c, ok
}

// MissingColumnsError aggregates every required role that found no matching
// header, so the caller can fix the sheet in one pass.
type MissingColumnsError struct {
	Roles []Role
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		names[i] = string(r)
	}
	return fmt.Sprintf("required column(s) missing: %s", strings.Join(names, ", "))
}

// Resolve maps actual headers to roles. Every required role must bind or a
// single MissingColumnsError listing all missing roles is returned. An
// unbound optional role is not an error.
func Resolve(headers []string) (Mapping, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = Normalize(h)
	}

	mapping := make(Mapping, len(candidates))
	for role, patterns := range candidates {
		if col, ok := findColumn(headers, normalized, patterns); ok {
			mapping[role] = col
		}
	}

	var missing []Role
	for _, role := range RequiredRoles {
		if _, ok := mapping[role]; !ok {
			missing = append(missing, role)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Roles: missing}
	}
	return mapping, nil
}

func findColumn(headers, normalized []string, patterns []string) (string, bool) {
	for _, pat := range patterns {
		want := Normalize(pat)
		for i, got := range normalized {
			if got == want {
				return headers[i], true
			}
		}
	}
	return "", false
}
