package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	for _, raw := range []string{
		"2024-03-01",
		"2024-03-01 15:04:05",
		"2024-03-01T15:04:05Z",
		"01/02/2024",
		"1/2/24 15:04",
		"02-Mar-24",
	} {
		_, ok := parseDate(raw)
		assert.True(t, ok, "parseDate(%q)", raw)
	}

	for _, raw := range []string{"", "yesterday", "2024-13-45"} {
		_, ok := parseDate(raw)
		assert.False(t, ok, "parseDate(%q)", raw)
	}
}
