package mirror

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a date cell. Spreadsheet
// exports are wildly inconsistent here, so the list covers ISO forms plus
// the short formats excelize renders for styled date cells.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/06 15:04",
	"1/2/06",
	"02-Jan-06",
	"Jan 2, 2006",
}

// parseDate attempts to parse a raw date cell. The boolean is false when no
// layout matched; callers treat that as "this table cannot be date-sorted",
// never as an error.
func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
