// Package dashboard reduces a user's records into the summary metrics shown on
// the dashboard. All amounts are converted into the user's base currency
// before they are summed.
package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"lifetrack/internal/currency"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	topCategoryLimit = 5
	trendMonths      = 6
)

// Transaction is the subset of a transaction the aggregator needs.
type Transaction struct {
	Type     string
	Amount   float64
	Currency string
	Category string
	Date     time.Time
}

// Goal is the subset of a goal the aggregator needs.
type Goal struct {
	ID      string
	Title   string
	Target  float64
	Current float64
}

// Activity is the subset of an activity the aggregator needs.
type Activity struct {
	ID              string
	Name            string
	Frequency       string
	Streak          int
	LastCompletedAt *time.Time
}

// Input bundles everything Aggregate reads.
type Input struct {
	Transactions []Transaction
	Goals        []Goal
	Activities   []Activity
	BaseCurrency string
	Now          time.Time
}

type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type MonthlyTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Type  string  `json:"type"`
	Total float64 `json:"total"`
}

type GoalProgress struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Progress    int    `json:"progress"`
	IsCompleted bool   `json:"is_completed"`
}

type ActivityStreak struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Frequency       string     `json:"frequency"`
	Streak          int        `json:"streak"`
	LastCompletedAt *time.Time `json:"last_completed_at"`
}

// Metrics is the aggregated dashboard.
type Metrics struct {
	BaseCurrency  string           `json:"base_currency"`
	Totals        Totals           `json:"totals"`
	TopCategories []CategoryTotal  `json:"top_categories"`
	MonthlyTrend  []MonthlyTotal   `json:"monthly_trend"`
	Goals         []GoalProgress   `json:"goals"`
	Activities    []ActivityStreak `json:"activities"`
}

// Aggregate computes the dashboard metrics for in.
//
// Totals cover every transaction dated at or before Now. Top categories cover
// expenses within Now's calendar month. The trend covers the six calendar
// months ending with Now's month, up to Now.
func Aggregate(in Input) Metrics {
	base := currency.Lookup(currency.Normalize(in.BaseCurrency)).Code
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	monthStart := StartOfMonth(now)
	monthEnd := EndOfMonth(now)
	trendStart := monthStart.AddDate(0, -(trendMonths - 1), 0)

	income := decimal.Zero
	expense := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	byMonth := make(map[monthKey]decimal.Decimal)

	for _, tx := range in.Transactions {
		amount := decimal.NewFromFloat(currency.Convert(tx.Amount, currency.Normalize(tx.Currency), base))
		date := tx.Date.In(now.Location())

		if !date.After(now) {
			if tx.Type == TypeIncome {
				income = income.Add(amount)
			} else {
				expense = expense.Add(amount)
			}
		}

		if tx.Type == TypeExpense && !date.Before(monthStart) && !date.After(monthEnd) {
			byCategory[tx.Category] = byCategory[tx.Category].Add(amount)
		}

		if !date.Before(trendStart) && !date.After(now) {
			key := monthKey{year: date.Year(), month: int(date.Month()), txType: normalizeType(tx.Type)}
			byMonth[key] = byMonth[key].Add(amount)
		}
	}

	return Metrics{
		BaseCurrency: base,
		Totals: Totals{
			Income:  cents(income),
			Expense: cents(expense),
			Savings: cents(income.Sub(expense)),
		},
		TopCategories: topCategories(byCategory, topCategoryLimit),
		MonthlyTrend:  monthlyTrend(byMonth),
		Goals:         goalProgress(in.Goals),
		Activities:    activityStreaks(in.Activities),
	}
}

// Progress returns current/target as a whole percentage capped at 100.
// A goal with no positive target is either met (100) or not (0).
func Progress(current, target float64) int {
	if math.IsNaN(current) || math.IsNaN(target) {
		return 0
	}
	if target <= 0 {
		if current >= target {
			return 100
		}
		return 0
	}
	pct := math.Round(current / target * 100)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// StartOfMonth returns midnight on the first day of t's month in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last representable instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

type monthKey struct {
	year   int
	month  int
	txType string
}

func normalizeType(t string) string {
	if t == TypeIncome {
		return TypeIncome
	}
	return TypeExpense
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func topCategories(totals map[string]decimal.Decimal, limit int) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryTotal{Category: cat, Total: cents(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func monthlyTrend(totals map[monthKey]decimal.Decimal) []MonthlyTotal {
	out := make([]MonthlyTotal, 0, len(totals))
	for key, total := range totals {
		if total.IsZero() {
			continue
		}
		out = append(out, MonthlyTotal{Year: key.year, Month: key.month, Type: key.txType, Total: cents(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		// income before expense
		return out[i].Type == TypeIncome && out[j].Type != TypeIncome
	})
	return out
}

func goalProgress(goals []Goal) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalProgress{
			ID:          g.ID,
			Title:       g.Title,
			Progress:    Progress(g.Current, g.Target),
			IsCompleted: g.Current >= g.Target,
		})
	}
	return out
}

func activityStreaks(activities []Activity) []ActivityStreak {
	out := make([]ActivityStreak, 0, len(activities))
	for _, a := range activities {
		out = append(out, ActivityStreak{
			ID:              a.ID,
			Name:            a.Name,
			Frequency:       a.Frequency,
			Streak:          a.Streak,
			LastCompletedAt: a.LastCompletedAt,
		})
	}
	return out
}
