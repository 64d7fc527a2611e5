package extract

import (
	"strings"

	"github.com/cleared-dev/smsparse/internal/model"
)

// Generic patterns carry the keyword in group "kw" so the direction can be read
// back from whichever class matched. Words between amount and keyword must be
// alphabetic, so a second figure in between breaks the match.
var genericRules = []Rule{
	newRule("generic.amount-first",
		cur+`\s*`+amt+only+`\s+(?:[a-z]+\s+){0,3}?(?P<kw>`+debitWords+`|`+creditWords+`)\b`,
	),
	newRule("generic.keyword-first",
		`\b(?P<kw>`+debitWords+`|`+creditWords+`)\s+(?:[a-z/]+\s+){0,4}?`+cur+`\s*`+amt+only,
	),
}

func directionOf(keyword string) model.Direction {
	switch strings.ToLower(keyword) {
	case "credited", "received", "deposited":
		return model.DirectionCredit
	default:
		return model.DirectionDebit
	}
}
