// Package report renders parsed transactions as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cleared-dev/smsparse/internal/parser"
)

// Header is the CSV header for a scan report.
const Header = "ref,institution,direction,amount,balance,masked_account,counterparty,category,occurred_at"

const (
	numFields      = 9
	colRef         = 0
	colInstitution = 1
	colDirection   = 2
	colAmount      = 3
	colBalance     = 4
	colMasked      = 5
	colCparty      = 6
	colCategory    = 7
	colOccurredAt  = 8
)

// MarshalResult converts a Result to a CSV row. Amounts are written with two
// decimal places; an absent balance or category is an empty cell.
func MarshalResult(r parser.Result) []string {
	c := r.Candidate
	row := make([]string, numFields)
	row[colRef] = r.Ref
	row[colInstitution] = c.Institution
	row[colDirection] = string(c.Direction)
	row[colAmount] = c.Amount.StringFixed(2)
	if c.Balance.Valid {
		row[colBalance] = c.Balance.Decimal.StringFixed(2)
	}
	row[colMasked] = c.MaskedAccount
	row[colCparty] = c.Counterparty
	if r.Category != nil {
		row[colCategory] = string(r.Category.ID)
	}
	row[colOccurredAt] = c.OccurredAt.Format(time.RFC3339)
	return row
}

// WriteResults writes results to w (including header).
func WriteResults(w io.Writer, results []parser.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range results {
		if err := cw.Write(MarshalResult(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
