package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   Key
		wantOK bool
	}{
		{"hdfc", "HDFC Bank: INR 1,250.00 has been debited from A/c XX1234", HDFC, true},
		{"sbi beats upi", "SBI: Rs.500 debited from A/c XX9012 for UPI/P2M/SWIGGY on 25-Feb.", SBI, true},
		{"state bank", "Dear customer, State Bank of India A/c credited", SBI, true},
		{"icici", "ICICI Bank: Your Acct XX5678 is credited with INR 50,000.00", ICICI, true},
		{"axis", "INR 500 debited from Axis Bank A/c no. XX4321", Axis, true},
		{"kotak", "Sent Rs.250.00 from Kotak Bank AC X1111 to shop@ybl", Kotak, true},
		{"pnb", "PNB: A/c XX2222 debited INR 900", PNB, true},
		{"upi token", "Paid Rs 120 via UPI to CHAI POINT", UPI, true},
		{"phonepe", "PhonePe: You received Rs 300", UPI, true},
		{"handle last", "Rs 99 paid to merchant@okaxis", UPI, true},
		{"case insensitive", "hdfc bank: rs 10 spent", HDFC, true},
		{"otp", "Your OTP for login is 123456. Valid for 5 minutes.", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Identify(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentify_OrderMatters(t *testing.T) {
	// An issuer named in a message with a UPI handle still wins.
	got, ok := Identify("ICICI Bank Acct XX1 debited; paid to cafe@okicici")
	assert.True(t, ok)
	assert.Equal(t, ICICI, got)
}

func TestIdentify_ListOrderBeatsPosition(t *testing.T) {
	// Markers are checked in list order, not by where they appear, so an
	// earlier-listed bank named as payee or in an IFSC code wins.
	tests := []struct {
		name string
		text string
		want Key
	}{
		{"payee card", "ICICI Bank Acct XX5678 debited for Rs 1,000.00 on 25-Feb-26; HDFC CREDIT CARD credited.", HDFC},
		{"ifsc code", "Axis Bank: INR 1,000.00 credited to A/c XX4321 from SBIN0001234", SBI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Identify(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "HDFC Bank", DisplayName(HDFC))
	assert.Equal(t, "ICICI Bank", DisplayName(ICICI))
	assert.Equal(t, "", DisplayName("nope"))
	for _, k := range Keys() {
		assert.NotEmpty(t, DisplayName(k), "key %s", k)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Equal(t, []Key{HDFC, SBI, ICICI, Axis, Kotak, PNB, UPI}, keys)
}
