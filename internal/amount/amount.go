// Package amount parses monetary figures captured from notification text.
package amount

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Pattern fragments shared by every rule table. Currency and Number are
// non-capturing so callers can wrap Number in their own named group.
const (
	// Currency matches INR, Rs, Rs. or the rupee sign.
	Currency = `(?:\b(?:INR|Rs)\.?|₹)`
	// Number matches a figure with any grouping commas and an optional fraction.
	Number = `\d[\d,]*(?:\.\d+)?`
)

// ErrInvalid is returned for text that is not a plain non-negative decimal.
var ErrInvalid = errors.New("invalid amount")

var plainNumber = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// Parse converts "1,250.00" or "1,00,000.00" to a decimal. Every comma is
// removed regardless of position, so both Western and Indian grouping work.
func Parse(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	cleaned := strings.ReplaceAll(raw, ",", "")
	if !plainNumber.MatchString(cleaned) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return d, nil
}
