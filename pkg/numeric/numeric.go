// Package numeric parses the decimal strings upstream APIs serve for every
// monetary field. Parsing is locale-invariant and never fails: blank or
// malformed input resolves to zero.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts an upstream decimal string to a decimal.Decimal.
// Empty, whitespace-only and malformed values resolve to zero.
func Parse(s string) decimal.Decimal {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseInt converts an upstream integer string to an int, zero on failure.
// Some envelopes quote counters, some don't; callers hand in the raw text.
func ParseInt(s string) int {
	d := Parse(s)
	if !d.IsInteger() {
		return 0
	}
	return int(d.IntPart())
}
