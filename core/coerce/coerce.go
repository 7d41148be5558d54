// Package coerce converts raw CSV cell text into the fixed column types
// the review tables are normalized to.
package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/reviewprep/core"
	"github.com/shopspring/decimal"
)

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// maxInt64Digits is the largest power of ten below math.MaxInt64.
const maxInt64Digits = 18

// falseWords and trueWords are the spellings a CSV export uses for booleans.
var (
	falseWords = map[string]bool{"False": true, "false": true, "FALSE": true}
	trueWords  = map[string]bool{"True": true, "true": true, "TRUE": true}
)

// Bool maps a boolean-like cell to 0 or 1.
//
// False words and numeric zero become 0. True words and any other number
// become 1. Anything else is non-canonical: with strict set it is rejected
// with core.ErrInvalidBoolean, otherwise it becomes 1 and canonical is false.
func Bool(value string, strict bool) (n int, canonical bool, err error) {
	s := strings.TrimSpace(value)
	switch {
	case falseWords[s]:
		return 0, true, nil
	case trueWords[s]:
		return 1, true, nil
	}

	// Only the sign is inspected: comparing against another decimal rescales
	// to a common exponent, which is unbounded work for inputs like 1e999999999.
	if d, perr := decimal.NewFromString(s); perr == nil {
		if d.IsZero() {
			return 0, true, nil
		}
		return 1, true, nil
	}

	if strict {
		return 0, false, core.ErrInvalidBoolean
	}
	return 1, false, nil
}

// FormatBool renders the result of Bool as cell text.
func FormatBool(n int) string {
	return strconv.Itoa(n)
}

// Int parses a numeric cell into an int64, truncating any fractional part
// toward zero. Empty, non-numeric and out-of-range values are errors.
func Int(value string) (int64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, core.ErrInvalidInteger
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrInvalidInteger, err)
	}
	if d.IsZero() {
		return 0, nil
	}
	// Bound the exponent before any rescaling.
	switch exp := int(d.Exponent()); {
	case exp > maxInt64Digits:
		return 0, core.ErrOutOfRange
	case exp < -d.NumDigits():
		return 0, nil
	}
	d = d.Truncate(0)
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, core.ErrOutOfRange
	}
	return d.IntPart(), nil
}

// FormatInt renders the result of Int as cell text.
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// Length counts code points, not bytes.
func Length(value string) int {
	return utf8.RuneCountInString(value)
}
