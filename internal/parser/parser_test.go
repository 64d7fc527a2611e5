package parser

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsparse/internal/extract"
	"github.com/cleared-dev/smsparse/internal/id"
	"github.com/cleared-dev/smsparse/internal/logger"
	"github.com/cleared-dev/smsparse/internal/model"
)

const (
	hdfcDebit   = "HDFC Bank: INR 1,250.00 has been debited from A/c XX1234 for purchase at AMAZON on 25-Feb-26. Avl Bal: INR 45,678.90"
	sbiDebit    = "SBI: Rs.500 debited from A/c XX9012 for UPI/P2M/SWIGGY on 25-Feb. Bal: Rs.12,345.67"
	iciciCredit = "ICICI Bank: Your Acct XX5678 is credited with INR 50,000.00 on 25-Feb. Avl Bal: INR 75,000.00."
	otp         = "Your OTP for login is 123456. Valid for 5 minutes."
	hdfcOddly   = "HDFC Bank: Rs 750 successfully debited from A/c XX1234"
)

var now = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

func newTestParser(cascade bool) *Parser {
	return New(Options{Clock: func() time.Time { return now }, CascadeGeneric: cascade, Workers: 3})
}

func TestParse_DebitWithCategory(t *testing.T) {
	res, ok := newTestParser(false).Parse(context.Background(), hdfcDebit)
	require.True(t, ok)

	assert.Equal(t, id.MessageRef(hdfcDebit), res.Ref)
	assert.Equal(t, model.DirectionDebit, res.Candidate.Direction)
	assert.Equal(t, "1250", res.Candidate.Amount.String())
	assert.Equal(t, "45678.9", res.Candidate.Balance.Decimal.String())
	assert.Equal(t, now, res.Candidate.OccurredAt)
	require.NotNil(t, res.Category)
	assert.Equal(t, model.CategoryShopping, res.Category.ID)
}

func TestParse_UPINarrationCategory(t *testing.T) {
	res, ok := newTestParser(false).Parse(context.Background(), sbiDebit)
	require.True(t, ok)
	require.NotNil(t, res.Category)
	assert.Equal(t, model.CategoryFood, res.Category.ID)
}

func TestParse_CreditHasNoCategory(t *testing.T) {
	res, ok := newTestParser(false).Parse(context.Background(), iciciCredit)
	require.True(t, ok)
	assert.Equal(t, model.DirectionCredit, res.Candidate.Direction)
	assert.Nil(t, res.Category)
}

func TestParse_UnknownCounterpartyIsOther(t *testing.T) {
	res, ok := newTestParser(false).Parse(context.Background(), "HDFC Bank: INR 2,000.00 withdrawn from A/c XX1234 on 25-Feb-26.")
	require.True(t, ok)
	assert.Equal(t, model.UnknownCounterparty, res.Candidate.Counterparty)
	require.NotNil(t, res.Category)
	assert.Equal(t, model.CategoryOther, res.Category.ID)
}

func TestParse_NotATransaction(t *testing.T) {
	_, ok := newTestParser(true).Parse(context.Background(), otp)
	assert.False(t, ok)
}

func TestParse_CascadePolicy(t *testing.T) {
	_, ok := newTestParser(false).Parse(context.Background(), hdfcOddly)
	assert.False(t, ok)

	res, ok := newTestParser(true).Parse(context.Background(), hdfcOddly)
	require.True(t, ok)
	assert.Equal(t, "HDFC Bank", res.Candidate.Institution)
	assert.Equal(t, "generic.amount-first", res.Candidate.Rule)
}

func TestParse_MissingProfileUsesGeneric(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logger.NewWithWriter(buf, "debug", logger.FormatJSON)
	require.NoError(t, err)
	ctx := logger.WithContext(context.Background(), log)

	p := New(Options{Clock: func() time.Time { return now }, Registry: extract.NewRegistry()})
	res, ok := p.Parse(ctx, sbiDebit)
	require.True(t, ok)
	assert.Equal(t, model.UnknownInstitution, res.Candidate.Institution)
	assert.Equal(t, "generic.amount-first", res.Candidate.Rule)
	assert.Contains(t, buf.String(), "no profile registered")
}

func TestParse_DebugLogOmitsBody(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logger.NewWithWriter(buf, "debug", logger.FormatJSON)
	require.NoError(t, err)
	ctx := logger.WithContext(context.Background(), log)

	_, ok := newTestParser(false).Parse(ctx, hdfcDebit)
	require.True(t, ok)
	_, ok = newTestParser(false).Parse(ctx, otp)
	require.False(t, ok)

	out := buf.String()
	assert.Contains(t, out, `"rule":"hdfc.debit"`)
	assert.Contains(t, out, "not a transaction")
	assert.NotContains(t, out, "AMAZON")
	assert.NotContains(t, out, "123456")
}

func TestParseAll_PreservesOrder(t *testing.T) {
	base := []string{hdfcDebit, otp, sbiDebit, iciciCredit}
	var texts []string
	for i := 0; i < 25; i++ {
		texts = append(texts, base...)
	}

	outcomes, err := newTestParser(false).ParseAll(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, outcomes, len(texts))

	for i, o := range outcomes {
		assert.Equal(t, texts[i], o.Text, "index %d", i)
		assert.Equal(t, texts[i] != otp, o.OK, "index %d", i)
		if o.OK {
			assert.Equal(t, id.MessageRef(texts[i]), o.Result.Ref)
		}
	}
	assert.Len(t, Accepted(outcomes), 75)
}

func TestParseAll_MatchesSequentialParse(t *testing.T) {
	texts := []string{hdfcDebit, sbiDebit, iciciCredit, hdfcOddly}
	p := newTestParser(true)

	outcomes, err := p.ParseAll(context.Background(), texts)
	require.NoError(t, err)
	for i, text := range texts {
		want, ok := p.Parse(context.Background(), text)
		require.True(t, ok)
		assert.True(t, want.Candidate.SameFields(outcomes[i].Result.Candidate), fmt.Sprintf("index %d", i))
	}
}

func TestParseAll_Empty(t *testing.T) {
	outcomes, err := newTestParser(false).ParseAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestParseAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestParser(false).ParseAll(ctx, []string{hdfcDebit, sbiDebit})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAccepted(t *testing.T) {
	got := Accepted([]Outcome{
		{Text: "a", OK: false},
		{Text: "b", OK: true, Result: Result{Ref: "r1"}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].Ref)
}
