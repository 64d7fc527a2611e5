package extract

import "github.com/cleared-dev/smsparse/internal/amount"

// Fragments shared by the institution rule tables. All patterns compile to
// RE2, so matching is linear in the message length.
const (
	cur = amount.Currency
	amt = `(?P<amount>` + amount.Number + `)`
	// only matches the rupees-only "/-" in "Rs.500/-".
	only = `(?:/-)?`

	debitWords  = `(?:debited|spent|withdrawn|paid|sent)`
	creditWords = `(?:credited|received|deposited)`

	// aux allows "has been debited", "is credited", "was spent".
	aux = `(?:(?:has|have)\s+been\s+|is\s+|was\s+)?`
	// link allows "debited by Rs", "credited with INR", "spent for Rs".
	link = `(?:(?:by|for|with|of)\s+)?`

	// upiPrefix skips UPI narration heads such as "UPI/P2M/" or "UPI/P2A/401234/".
	upiPrefix = `(?:UPI/[A-Z0-9]+/(?:\d+/)?)?`
	// partyText stops at sentence ends but keeps "Mr. X" and "AMAZON.IN".
	partyText = `(?:(?:Mr|Mrs|Ms|Dr)\.\s|\.\S|[^.;\n])+?`
	// gap runs up to a party preposition. Like partyText it crosses "no. " and
	// inner periods but not a sentence end.
	gap      = `(?:(?:no|Rs)\.\s|\.\S|[^.;])*?`
	partyEnd = `(?:\s+(?:on|ref|refno|avl|bal|via|using|info)\b|\.(?:\s|$)|\s*[;(\n]|\s*$)`
)

// amountFirst matches "INR 1,250.00 has been debited".
func amountFirst(words string) string {
	return cur + `\s*` + amt + only + `\s+` + aux + words + `\b`
}

// keywordFirst matches "debited by Rs.500" and "Sent Rs.500".
func keywordFirst(words string) string {
	return `\b` + words + `\s+` + link + cur + `\s*` + amt + only
}

// withParty appends an optional merchant clause introduced by one of preps.
// The clause may not cross a sentence boundary.
func withParty(expr, preps string) string {
	return expr + `(?:` + gap + `\b(?:` + preps + `)\s+` + upiPrefix + `(?P<party>` + partyText + `)` + partyEnd + `)?`
}

var sharedBalance = newRule("balance",
	`\b(?:avl\.?\s*bal(?:ance)?|available\s+bal(?:ance)?|avbl\s+bal(?:ance)?|clr\s+bal|bal(?:ance)?)\b[\s:.-]*(?:is\s+)?(?:`+cur+`\s*)?`+amt,
)

var sharedAccount = newRule("account",
	`\b(?:a/c|acct|account|ac|card)(?:\s+no\.?)?(?:\s+ending(?:\s+(?:with|in))?)?[\s:]*[x*#.]*\d*?(?P<acct>\d{4})\b`,
)
