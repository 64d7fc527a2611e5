package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsparse/internal/model"
	"github.com/cleared-dev/smsparse/internal/parser"
)

var occurred = time.Date(2026, 2, 25, 9, 30, 0, 0, time.UTC)

func debitResult() parser.Result {
	return parser.Result{
		Ref: "7d3c2b1a-0000-5000-8000-000000000001",
		Candidate: model.Candidate{
			Direction:      model.DirectionDebit,
			Amount:         decimal.RequireFromString("1250"),
			Counterparty:   "AMAZON",
			Institution:    "HDFC Bank",
			InstitutionKey: "hdfc",
			MaskedAccount:  "1234",
			Balance:        decimal.NewNullDecimal(decimal.RequireFromString("45678.9")),
			OccurredAt:     occurred,
			Rule:           "hdfc.debit",
		},
		Category: &model.CategoryResult{ID: model.CategoryShopping, Label: "Shopping"},
	}
}

func TestMarshalResult(t *testing.T) {
	row := MarshalResult(debitResult())
	assert.Equal(t, []string{
		"7d3c2b1a-0000-5000-8000-000000000001",
		"HDFC Bank",
		"debit",
		"1250.00",
		"45678.90",
		"1234",
		"AMAZON",
		"shopping",
		"2026-02-25T09:30:00Z",
	}, row)
}

func TestMarshalResult_OptionalFieldsEmpty(t *testing.T) {
	r := parser.Result{
		Ref: "ref",
		Candidate: model.Candidate{
			Direction:   model.DirectionCredit,
			Amount:      decimal.RequireFromString("50000"),
			Institution: model.UnknownInstitution,
			OccurredAt:  occurred,
		},
	}
	row := MarshalResult(r)
	assert.Equal(t, "50000.00", row[colAmount])
	assert.Empty(t, row[colBalance])
	assert.Empty(t, row[colMasked])
	assert.Empty(t, row[colCparty])
	assert.Empty(t, row[colCategory])
}

func TestWriteResults(t *testing.T) {
	credit := debitResult()
	credit.Candidate.Direction = model.DirectionCredit
	credit.Candidate.Counterparty = "SMITH, JOHN"
	credit.Category = nil

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, []parser.Result{debitResult(), credit}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.Len(t, rec, numFields)
	}
	assert.Equal(t, "SMITH, JOHN", records[2][colCparty])
	assert.Equal(t, "credit", records[2][colDirection])
}

func TestWriteResults_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestNewTransaction(t *testing.T) {
	got := NewTransaction(debitResult())
	assert.Equal(t, "1250.00", got.Amount)
	assert.Equal(t, "45678.90", got.Balance)
	assert.Equal(t, model.DirectionDebit, got.Direction)
	assert.Equal(t, "HDFC Bank", got.Institution)
	require.NotNil(t, got.Category)
	assert.Equal(t, model.CategoryShopping, got.Category.ID)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":"1250.00"`)
	assert.Contains(t, string(data), `"maskedAccount":"1234"`)
}

func TestNewTransaction_OmitsAbsentFields(t *testing.T) {
	r := debitResult()
	r.Candidate.Balance = decimal.NullDecimal{}
	r.Candidate.MaskedAccount = ""
	r.Category = nil

	data, err := json.Marshal(NewTransaction(r))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "balance")
	assert.NotContains(t, string(data), "maskedAccount")
	assert.NotContains(t, string(data), "category")
}
