package model

import (
	"fmt"
)

// InvariantError describes a candidate that breaks a structural guarantee.
// These indicate a defect in the rule tables, not bad input.
type InvariantError struct {
	Field       string
	Description string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("invariant [%s]: %s", e.Field, e.Description)
}

// Validate checks the structural invariants of a candidate.
func (c Candidate) Validate() []InvariantError {
	var errs []InvariantError

	if c.Direction != DirectionDebit && c.Direction != DirectionCredit {
		errs = append(errs, InvariantError{
			Field:       "direction",
			Description: fmt.Sprintf("must be exactly one of debit or credit, got %q", c.Direction),
		})
	}

	if c.Amount.IsNegative() {
		errs = append(errs, InvariantError{
			Field:       "amount",
			Description: fmt.Sprintf("negative amount %s", c.Amount),
		})
	}

	if c.Balance.Valid && c.Balance.Decimal.IsNegative() {
		errs = append(errs, InvariantError{
			Field:       "balance",
			Description: fmt.Sprintf("negative balance %s", c.Balance.Decimal),
		})
	}

	if c.MaskedAccount != "" && !isFourDigits(c.MaskedAccount) {
		errs = append(errs, InvariantError{
			Field:       "masked_account",
			Description: fmt.Sprintf("expected 4 digits, got %q", c.MaskedAccount),
		})
	}

	if c.Institution == "" {
		errs = append(errs, InvariantError{
			Field:       "institution",
			Description: "institution name is empty",
		})
	}

	return errs
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
