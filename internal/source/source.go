// Package source identifies which institution sent a notification message.
package source

import "strings"

// Key identifies a known institution message format.
type Key string

const (
	HDFC  Key = "hdfc"
	SBI   Key = "sbi"
	ICICI Key = "icici"
	Axis  Key = "axis"
	Kotak Key = "kotak"
	PNB   Key = "pnb"
	UPI   Key = "upi"
)

type marker struct {
	key    Key
	tokens []string
}

// markers are tried in order. Specific issuers come before the generic UPI
// tokens, and the bare "@" handle check is last because it matches the most.
var markers = []marker{
	{HDFC, []string{"hdfc"}},
	{SBI, []string{"sbi", "state bank"}},
	{ICICI, []string{"icici"}},
	{Axis, []string{"axis bank", "axisbk"}},
	{Kotak, []string{"kotak"}},
	{PNB, []string{"pnb", "punjab national"}},
	{UPI, []string{"upi", "paytm", "phonepe", "gpay"}},
	{UPI, []string{"@"}},
}

var displayNames = map[Key]string{
	HDFC:  "HDFC Bank",
	SBI:   "SBI",
	ICICI: "ICICI Bank",
	Axis:  "Axis Bank",
	Kotak: "Kotak Mahindra Bank",
	PNB:   "Punjab National Bank",
	UPI:   "UPI",
}

// Identify returns the first institution whose marker appears in text.
// ok is false when nothing matched, which means generic extraction applies.
func Identify(text string) (key Key, ok bool) {
	lower := strings.ToLower(text)
	for _, m := range markers {
		for _, tok := range m.tokens {
			if strings.Contains(lower, tok) {
				return m.key, true
			}
		}
	}
	return "", false
}

// DisplayName returns the human-readable institution name, or "" for unknown keys.
func DisplayName(k Key) string {
	return displayNames[k]
}

// Keys returns every known institution in identification order, without duplicates.
func Keys() []Key {
	var keys []Key
	seen := make(map[Key]bool)
	for _, m := range markers {
		if !seen[m.key] {
			seen[m.key] = true
			keys = append(keys, m.key)
		}
	}
	return keys
}
