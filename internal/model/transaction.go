package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is whether a transaction decreases or increases the account balance.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

const (
	// UnknownInstitution is reported when no institution marker matched.
	UnknownInstitution = "Unknown"
	// UnknownCounterparty is reported when a debit rule matched without a merchant capture.
	UnknownCounterparty = "Unknown"
)

// Candidate is a transaction extracted from a single notification message.
type Candidate struct {
	Direction      Direction
	Amount         decimal.Decimal     // always >= 0
	Counterparty   string              // "" = not provided, UnknownCounterparty = not captured
	Institution    string              // display name
	InstitutionKey string              // "" when unidentified
	MaskedAccount  string              // last 4 visible digits, "" if absent
	Balance        decimal.NullDecimal // resulting balance, Valid=false if not stated
	OccurredAt     time.Time           // processing time, never parsed from the message
	Rule           string              // matching rule, e.g. "hdfc.debit"
}

// HasCounterparty reports whether a counterparty name is present, including
// the explicit UnknownCounterparty marker.
func (c Candidate) HasCounterparty() bool {
	return c.Counterparty != ""
}

// SameFields reports whether two candidates are equal in every field except OccurredAt.
func (c Candidate) SameFields(o Candidate) bool {
	if c.Balance.Valid != o.Balance.Valid {
		return false
	}
	if c.Balance.Valid && !c.Balance.Decimal.Equal(o.Balance.Decimal) {
		return false
	}
	return c.Direction == o.Direction &&
		c.Amount.Equal(o.Amount) &&
		c.Counterparty == o.Counterparty &&
		c.Institution == o.Institution &&
		c.InstitutionKey == o.InstitutionKey &&
		c.MaskedAccount == o.MaskedAccount &&
		c.Rule == o.Rule
}
