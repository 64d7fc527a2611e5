package extract

import (
	"github.com/cleared-dev/smsparse/internal/source"
)

// Profile bundles the four extraction rules for one institution.
type Profile struct {
	Key     source.Key
	Name    string
	Debit   Rule
	Credit  Rule
	Balance Rule
	Account Rule
}

func newProfile(key source.Key, debit, credit Rule) *Profile {
	return &Profile{
		Key:     key,
		Name:    source.DisplayName(key),
		Debit:   debit,
		Credit:  credit,
		Balance: sharedBalance,
		Account: sharedAccount,
	}
}

func hdfcProfile() *Profile {
	return newProfile(source.HDFC,
		newRule("hdfc.debit",
			// INR 1,250.00 has been debited from A/c XX1234 for purchase at AMAZON on 25-Feb-26
			withParty(amountFirst(debitWords), `towards|at|to`),
			// Sent Rs.500.00 From HDFC Bank A/C *1234 To JOHN On 25/02/26
			withParty(keywordFirst(debitWords), `towards|at|to`),
		),
		newRule("hdfc.credit",
			amountFirst(creditWords),
			keywordFirst(creditWords),
		),
	)
}

func sbiProfile() *Profile {
	return newProfile(source.SBI,
		newRule("sbi.debit",
			// Rs.500 debited from A/c XX9012 for UPI/P2M/SWIGGY on 25-Feb
			withParty(amountFirst(debitWords), `trf\s+to|for|to|at`),
			// A/C X9012 debited by Rs.500 on 25Feb26 trf to JOHN Refno 1234
			withParty(keywordFirst(debitWords), `trf\s+to|transferred\s+to|to|at`),
		),
		newRule("sbi.credit",
			keywordFirst(creditWords),
			amountFirst(creditWords),
		),
	)
}

func iciciProfile() *Profile {
	return newProfile(source.ICICI,
		newRule("icici.debit",
			// INR 500.00 spent using ICICI Bank Card XX1234 on 25-Feb-26 on AMAZON. Avl Limit
			amountFirst(`spent`)+`\s+using\s+ICICI\s+Bank\s+Card\s+\S+\s+on\s+\S+\s+(?:on|at)\s+`+
				`(?P<party>`+partyText+`)`+partyEnd,
			// Acct XX5678 debited for Rs 1,000.00 on 25-Feb-26; JOHN credited.
			keywordFirst(debitWords)+`(?:[^;.]*;\s*(?P<party>[^;.]+?)\s+credited\b)?`,
			withParty(amountFirst(debitWords), `towards|at|to`),
		),
		newRule("icici.credit",
			// Your Acct XX5678 is credited with INR 50,000.00 on 25-Feb.
			keywordFirst(creditWords),
			amountFirst(creditWords),
		),
	)
}

func axisProfile() *Profile {
	return newProfile(source.Axis,
		newRule("axis.debit",
			// INR 500.00 debited A/c no. XX4321 25-02-26 10:00:00 UPI/P2M/512345/ZOMATO
			amountFirst(debitWords)+`(?:.*?\bUPI/P2[AM]/\d+/(?P<party>[^/\n]+?)(?:/|\s+not\b|\s*$))?`,
			withParty(keywordFirst(debitWords), `at|to`),
		),
		newRule("axis.credit",
			amountFirst(creditWords),
			keywordFirst(creditWords),
		),
	)
}

func kotakProfile() *Profile {
	return newProfile(source.Kotak,
		newRule("kotak.debit",
			// Sent Rs.250.00 from Kotak Bank AC X1111 to shop@ybl on 25-02-26
			withParty(keywordFirst(debitWords), `to|at`),
			withParty(amountFirst(debitWords), `to|at`),
		),
		newRule("kotak.credit",
			// Received Rs.500.00 in your Kotak Bank AC X1111 from john@okaxis on 25-02-26
			keywordFirst(creditWords),
			amountFirst(creditWords),
		),
	)
}

func pnbProfile() *Profile {
	return newProfile(source.PNB,
		newRule("pnb.debit",
			// A/c XX2222 debited INR 900.00 on 25-02-26 thru UPI:1234
			keywordFirst(debitWords),
			amountFirst(debitWords),
		),
		newRule("pnb.credit",
			keywordFirst(creditWords),
			amountFirst(creditWords),
		),
	)
}

func upiProfile() *Profile {
	return newProfile(source.UPI,
		newRule("upi.debit",
			// Paid Rs 120 via UPI to CHAI POINT
			withParty(keywordFirst(debitWords), `to|at`),
			// Rs 99 paid to merchant@okaxis
			withParty(amountFirst(debitWords), `to|at`),
		),
		newRule("upi.credit",
			// You received Rs 300 from JOHN
			keywordFirst(creditWords),
			amountFirst(creditWords),
		),
	)
}
