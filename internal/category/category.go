// Package category maps a merchant or payee name to a spending category.
package category

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cleared-dev/smsparse/internal/model"
)

type group struct {
	result   model.CategoryResult
	keywords []string
}

// groups are tried in order; the first group with a matching keyword wins.
// A keyword matches where it starts a word, so "ola" matches "OLA CABS" and
// "olamoney" but not "motorola".
var groups = []group{
	{
		result: model.CategoryResult{ID: model.CategoryFood, Label: "Food & Dining", Icon: "🍔"},
		keywords: []string{
			"swiggy", "zomato", "dominos", "domino's", "pizza", "mcdonald", "kfc", "burger",
			"starbucks", "cafe", "coffee", "chai", "restaurant", "dunzo", "zepto", "blinkit",
			"bigbasket", "eatfit", "bakery", "licious",
		},
	},
	{
		result: model.CategoryResult{ID: model.CategoryShopping, Label: "Shopping", Icon: "🛍️"},
		keywords: []string{
			"amazon", "flipkart", "myntra", "ajio", "meesho", "nykaa", "snapdeal", "tatacliq",
			"reliance", "dmart", "decathlon", "ikea", "croma", "mall", "store", "mart",
		},
	},
	{
		result: model.CategoryResult{ID: model.CategoryTransport, Label: "Transport", Icon: "🚗"},
		keywords: []string{
			"uber", "ola", "rapido", "irctc", "redbus", "metro", "fastag", "petrol", "fuel",
			"indian oil", "hpcl", "bpcl", "shell", "makemytrip", "indigo", "air india", "parking",
		},
	},
	{
		result: model.CategoryResult{ID: model.CategoryEntertainment, Label: "Entertainment", Icon: "🎬"},
		keywords: []string{
			"netflix", "spotify", "hotstar", "prime video", "bookmyshow", "pvr", "inox",
			"youtube", "gaana", "jiosaavn", "steam", "playstation", "cinema",
		},
	},
	{
		result: model.CategoryResult{ID: model.CategoryBills, Label: "Bills & Utilities", Icon: "🧾"},
		keywords: []string{
			"airtel", "jio", "vodafone", "bsnl", "electricity", "bescom", "tata power",
			"broadband", "recharge", "gas", "water", "insurance", "lic", "rent", "emi",
		},
	},
	{
		result: model.CategoryResult{ID: model.CategoryHealth, Label: "Health", Icon: "💊"},
		keywords: []string{
			"apollo", "pharmeasy", "netmeds", "1mg", "medplus", "pharmacy", "hospital",
			"clinic", "diagnostic", "practo", "cult.fit", "gym",
		},
	},
}

var other = model.CategoryResult{ID: model.CategoryOther, Label: "Other", Icon: "📦"}

// Classify returns the category for counterparty. It never fails; names that
// match no keyword are classified as other.
func Classify(counterparty string) model.CategoryResult {
	name := strings.ToLower(strings.TrimSpace(counterparty))
	if name == "" {
		return other
	}
	for _, g := range groups {
		for _, kw := range g.keywords {
			if hasWordPrefix(name, kw) {
				return g.result
			}
		}
	}
	return other
}

func hasWordPrefix(s, kw string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], kw)
		if j < 0 {
			return false
		}
		at := i + j
		if at == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:at])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		i = at + 1
	}
}

// All returns every category in priority order, ending with other.
func All() []model.CategoryResult {
	out := make([]model.CategoryResult, 0, len(groups)+1)
	for _, g := range groups {
		out = append(out, g.result)
	}
	return append(out, other)
}

// Lookup returns the category with the given id.
func Lookup(id model.Category) (model.CategoryResult, bool) {
	for _, c := range All() {
		if c.ID == id {
			return c, true
		}
	}
	return model.CategoryResult{}, false
}
