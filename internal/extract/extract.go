// Package extract pulls transaction fields out of bank and UPI notification text.
//
// Extraction for an identified institution tries its debit rule, then its credit
// rule. Balance and masked account are read independently afterwards. When no
// institution applies, two generic keyword patterns are tried instead.
package extract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsparse/internal/model"
)

// Options configures an Extractor.
type Options struct {
	// Clock stamps OccurredAt. Defaults to time.Now.
	Clock func() time.Time
	// CascadeGeneric makes an institution-specific miss fall through to the
	// generic patterns. When false such messages yield no transaction.
	CascadeGeneric bool
}

// Extractor applies rule tables to message text. It holds no mutable state.
type Extractor struct {
	clock   func() time.Time
	cascade bool
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Extractor{clock: clock, cascade: opts.CascadeGeneric}
}

// Extract applies p's rules to text, or the generic rules when p is nil.
// ok is false when the message is not a recognizable transaction.
func (e *Extractor) Extract(text string, p *Profile) (model.Candidate, bool) {
	if p == nil {
		return e.Generic(text)
	}
	if c, ok := e.institution(text, p); ok {
		return c, true
	}
	if !e.cascade {
		return model.Candidate{}, false
	}
	return e.generic(text, p.Name, string(p.Key))
}

// Generic applies only the generic keyword patterns to text.
func (e *Extractor) Generic(text string) (model.Candidate, bool) {
	return e.generic(text, model.UnknownInstitution, "")
}

func (e *Extractor) institution(text string, p *Profile) (model.Candidate, bool) {
	c := model.Candidate{
		Institution:    p.Name,
		InstitutionKey: string(p.Key),
	}

	// A figure introduced by a balance keyword is never the transaction amount.
	bal := p.Balance.amountSpans(text)

	h, ok := p.Debit.find(text, bal...)
	if ok {
		c.Direction = model.DirectionDebit
		c.Rule = p.Debit.Name
		c.Counterparty = model.UnknownCounterparty
		if h.hasParty {
			if name := cleanParty(h.party); name != "" {
				c.Counterparty = name
			}
		}
	} else if h, ok = p.Credit.find(text, bal...); ok {
		c.Direction = model.DirectionCredit
		c.Rule = p.Credit.Name
	} else {
		return model.Candidate{}, false
	}
	c.Amount = h.amount

	// The balance may never come from the transaction amount's own capture.
	if b, ok := p.Balance.find(text, h.amountSpan); ok {
		c.Balance = decimal.NewNullDecimal(b.amount)
	}
	if acct, ok := p.Account.findText(text, groupAccount); ok {
		c.MaskedAccount = acct
	}

	return e.finish(c), true
}

func (e *Extractor) generic(text, institution, key string) (model.Candidate, bool) {
	bal := sharedBalance.amountSpans(text)
	for _, r := range genericRules {
		h, ok := r.find(text, bal...)
		if !ok {
			continue
		}
		return e.finish(model.Candidate{
			Direction:      directionOf(h.keyword),
			Amount:         h.amount,
			Institution:    institution,
			InstitutionKey: key,
			Rule:           r.Name,
		}), true
	}
	return model.Candidate{}, false
}

// finish stamps the processing time and panics if the candidate is malformed;
// a malformed candidate means a rule table is wrong.
func (e *Extractor) finish(c model.Candidate) model.Candidate {
	c.OccurredAt = e.clock()
	if errs := c.Validate(); len(errs) > 0 {
		panic(errs[0])
	}
	return c
}
