package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsparse/internal/amount"
)

// Capture group names used by rule patterns.
const (
	groupAmount  = "amount"
	groupParty   = "party"
	groupAccount = "acct"
	groupKeyword = "kw"
)

// Rule is an ordered list of patterns. The first pattern that matches with a
// parseable amount wins; an unparseable capture falls through to the next one.
type Rule struct {
	Name     string
	patterns []*regexp.Regexp
}

// span is a [start, end) byte range within the message.
type span [2]int

func (s span) overlaps(o span) bool {
	return s[0] < o[1] && o[0] < s[1]
}

// hit is one successful pattern match.
type hit struct {
	amount     decimal.Decimal
	amountSpan span
	party      string
	hasParty   bool
	keyword    string
}

func newRule(name string, exprs ...string) Rule {
	r := Rule{Name: name}
	for _, expr := range exprs {
		r.patterns = append(r.patterns, regexp.MustCompile(`(?i)`+expr))
	}
	return r
}

// find returns the first match whose amount group parses and overlaps none of
// exclude. Zero spans in exclude are ignored.
func (r Rule) find(text string, exclude ...span) (hit, bool) {
	for _, re := range r.patterns {
		ai := re.SubexpIndex(groupAmount)
		if ai < 0 {
			continue
		}
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			s := span{loc[2*ai], loc[2*ai+1]}
			if s[0] < 0 || overlapsAny(s, exclude) {
				continue
			}
			d, err := amount.Parse(text[s[0]:s[1]])
			if err != nil {
				continue
			}
			h := hit{amount: d, amountSpan: s}
			h.party, h.hasParty = group(re, loc, text, groupParty)
			h.keyword, _ = group(re, loc, text, groupKeyword)
			return h, true
		}
	}
	return hit{}, false
}

// amountSpans returns the amount capture of every match of every pattern.
func (r Rule) amountSpans(text string) []span {
	var out []span
	for _, re := range r.patterns {
		ai := re.SubexpIndex(groupAmount)
		if ai < 0 {
			continue
		}
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if loc[2*ai] >= 0 {
				out = append(out, span{loc[2*ai], loc[2*ai+1]})
			}
		}
	}
	return out
}

func overlapsAny(s span, exclude []span) bool {
	for _, e := range exclude {
		if e != (span{}) && s.overlaps(e) {
			return true
		}
	}
	return false
}

// findText returns the first capture of the named group across all patterns.
func (r Rule) findText(text, name string) (string, bool) {
	for _, re := range r.patterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if v, ok := group(re, loc, text, name); ok {
			return v, true
		}
	}
	return "", false
}

func group(re *regexp.Regexp, loc []int, text, name string) (string, bool) {
	i := re.SubexpIndex(name)
	if i < 0 || loc[2*i] < 0 {
		return "", false
	}
	return text[loc[2*i]:loc[2*i+1]], true
}

// cleanParty trims whitespace and trailing punctuation and collapses inner runs of spaces.
func cleanParty(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, " .,:-")
}
