package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"lifetrack/internal/currency"
)

// CategorySummary is the total for one (type, category) pair in a month.
type CategorySummary struct {
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// MonthlySummary totals transactions dated within the given calendar month
// (1-12) in loc, grouped by type and category. Results are ordered income
// first, then by descending total.
func MonthlySummary(txs []Transaction, baseCurrency string, year, month int, loc *time.Location) []CategorySummary {
	if loc == nil {
		loc = time.UTC
	}
	base := currency.Lookup(currency.Normalize(baseCurrency)).Code
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := EndOfMonth(start)

	type key struct{ txType, category string }
	totals := make(map[key]decimal.Decimal)
	counts := make(map[key]int)

	for _, tx := range txs {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		k := key{txType: normalizeType(tx.Type), category: tx.Category}
		amount := decimal.NewFromFloat(currency.Convert(tx.Amount, currency.Normalize(tx.Currency), base))
		totals[k] = totals[k].Add(amount)
		counts[k]++
	}

	out := make([]CategorySummary, 0, len(totals))
	for k, total := range totals {
		out = append(out, CategorySummary{Type: k.txType, Category: k.category, Total: cents(total), Count: counts[k]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == TypeIncome
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}
