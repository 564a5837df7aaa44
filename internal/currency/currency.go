// Package currency converts amounts between the supported currencies using a
// fixed rate table expressed in US dollars.
package currency

import (
	"math"
	"strings"
)

// DefaultCurrency is used for unknown or empty codes.
const DefaultCurrency = "USD"

// Currency describes a supported currency and its value in USD.
type Currency struct {
	Code      string  `json:"code"`
	Label     string  `json:"label"`
	Symbol    string  `json:"symbol"`
	RateToUSD float64 `json:"rate_to_usd"`
}

// Rates are approximate and updated by hand.
var table = map[string]Currency{
	"USD": {Code: "USD", Label: "US Dollar", Symbol: "$", RateToUSD: 1},
	"EUR": {Code: "EUR", Label: "Euro", Symbol: "€", RateToUSD: 1.08},
	"GBP": {Code: "GBP", Label: "British Pound", Symbol: "£", RateToUSD: 1.27},
	"INR": {Code: "INR", Label: "Indian Rupee", Symbol: "₹", RateToUSD: 0.012},
	"BDT": {Code: "BDT", Label: "Bangladeshi Taka", Symbol: "৳", RateToUSD: 0.0091},
}

var order = []string{"USD", "EUR", "GBP", "INR", "BDT"}

// Supported returns the supported currency codes in display order.
func Supported() []string {
	codes := make([]string, len(order))
	copy(codes, order)
	return codes
}

// All returns the full currency table in display order.
func All() []Currency {
	out := make([]Currency, 0, len(order))
	for _, code := range order {
		out = append(out, table[code])
	}
	return out
}

// IsSupported reports whether code is in the rate table. Codes are matched
// exactly; callers normalise case before storing.
func IsSupported(code string) bool {
	_, ok := table[code]
	return ok
}

// Normalize upper-cases and trims a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the currency for code, or the default currency when the code
// is not supported.
func Lookup(code string) Currency {
	if c, ok := table[code]; ok {
		return c
	}
	return table[DefaultCurrency]
}

// Convert converts amount from one currency to another. Non-finite amounts
// convert to zero.
func Convert(amount float64, from, to string) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}

	src := Lookup(from)
	dst := Lookup(to)
	if src.Code == dst.Code {
		return amount
	}

	return amount * src.RateToUSD / dst.RateToUSD
}
