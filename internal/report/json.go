package report

import (
	"time"

	"github.com/cleared-dev/smsparse/internal/model"
	"github.com/cleared-dev/smsparse/internal/parser"
)

// Transaction is the JSON view of a parsed result. Money is rendered as a
// fixed two-place string so no precision is lost in transit.
type Transaction struct {
	Ref           string                `json:"ref"`
	Direction     model.Direction       `json:"direction"`
	Amount        string                `json:"amount"`
	Balance       string                `json:"balance,omitempty"`
	Institution   string                `json:"institution"`
	MaskedAccount string                `json:"maskedAccount,omitempty"`
	Counterparty  string                `json:"counterparty,omitempty"`
	Category      *model.CategoryResult `json:"category,omitempty"`
	OccurredAt    time.Time             `json:"occurredAt"`
	Rule          string                `json:"rule"`
}

// NewTransaction builds the JSON view of r.
func NewTransaction(r parser.Result) Transaction {
	c := r.Candidate
	t := Transaction{
		Ref:           r.Ref,
		Direction:     c.Direction,
		Amount:        c.Amount.StringFixed(2),
		Institution:   c.Institution,
		MaskedAccount: c.MaskedAccount,
		Counterparty:  c.Counterparty,
		Category:      r.Category,
		OccurredAt:    c.OccurredAt,
		Rule:          c.Rule,
	}
	if c.Balance.Valid {
		t.Balance = c.Balance.Decimal.StringFixed(2)
	}
	return t
}
