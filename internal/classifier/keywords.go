package classifier

import "strings"

// Transaction types understood by the classifier. Anything else is treated
// as an expense.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// DefaultCategory is returned when nothing matches.
const DefaultCategory = "General"

const (
	defaultConfidence = 0.4
	emptyConfidence   = 0.1
)

type rule struct {
	category string
	keywords []string
}

// Table is an ordered keyword table. The first category with a keyword
// contained in the lower-cased description wins.
type Table struct {
	name       string
	confidence float64
	expense    []rule
	income     []rule
}

var standardExpense = []rule{
	{"Food & Dining", []string{"restaurant", "dinner", "lunch", "coffee", "grocer", "meal", "snack", "cafe", "takeout"}},
	{"Groceries", []string{"grocery", "supermarket", "vegetable", "fruit", "market", "provision", "wholesale"}},
	{"Health & Fitness", []string{"gym", "protein", "supplement", "yoga", "trainer", "fitness", "vitamin", "medical", "doctor"}},
	{"Education", []string{"tuition", "course", "class", "book", "study", "exam", "subscription", "coaching", "school"}},
	{"Transportation", []string{"uber", "lyft", "fuel", "bus", "train", "ticket", "parking", "taxi", "ride", "cab", "flight"}},
	{"Entertainment", []string{"movie", "game", "concert", "music", "netflix", "spotify", "event", "cinema", "show", "festival"}},
	{"Utilities", []string{"electric", "water", "internet", "phone", "bill", "utility", "gas", "power", "electricity", "recharge"}},
	{"Shopping", []string{"clothing", "electronics", "amazon", "mall", "store", "shopping", "apparel", "fashion", "purchase"}},
	{"Savings", []string{"savings", "deposit", "investment", "stock", "mutual", "fund", "sip", "fd", "rd"}},
	{"Housing", []string{"rent", "mortgage", "lease", "apartment", "home", "maintenance", "repairs"}},
	{"Travel", []string{"hotel", "tour", "trip", "vacation", "airbnb", "booking", "visa"}},
	{"Insurance", []string{"premium", "insurance", "coverage", "policy", "life", "health insurance"}},
	{"Subscriptions", []string{"subscription", "membership", "saas", "plan", "renewal", "license"}},
	{"Gifts & Donations", []string{"gift", "donation", "charity", "offering", "contribution"}},
}

var standardIncome = []rule{
	{"Salary", []string{"salary", "paycheck", "wage", "payroll", "monthly income", "stipend"}},
	{"Freelance & Side Hustles", []string{"freelance", "contract", "gig", "side hustle", "client payment", "invoice", "upwork", "fiverr"}},
	{"Investments", []string{"dividend", "stock", "interest", "capital gain", "mutual fund", "trading", "crypto"}},
	{"Rental Income", []string{"rent received", "tenant", "lease payment", "airbnb income"}},
	{"Business & Sales", []string{"sale", "revenue", "business income", "order payment", "store income", "customer payment"}},
	{"Gifts & Refunds", []string{"gift", "refund", "rebate", "cashback", "reimbursement"}},
	{"Other Income", []string{"lottery", "bonus", "award", "scholarship", "royalty", "pension"}},
}

var compactExpense = []rule{
	{"Food & Dining", []string{"restaurant", "lunch", "dinner", "coffee", "cafe", "grocery", "food"}},
	{"Transportation", []string{"uber", "taxi", "fuel", "bus", "train", "parking"}},
	{"Utilities", []string{"electric", "water", "internet", "phone", "bill"}},
	{"Entertainment", []string{"movie", "netflix", "spotify", "game", "concert"}},
	{"Health & Fitness", []string{"gym", "doctor", "pharmacy", "medicine", "yoga"}},
	{"Shopping", []string{"amazon", "clothing", "mall", "store"}},
	{"Housing", []string{"rent", "mortgage"}},
	{"Education", []string{"course", "book", "tuition"}},
}

// Standard is the full keyword table covering expense and income categories.
var Standard = Table{name: "standard", confidence: 0.7, expense: standardExpense, income: standardIncome}

// Compact is the smaller expense table. Income descriptions use the standard
// income rules.
var Compact = Table{name: "compact", confidence: 0.6, expense: compactExpense}

// TableByName returns the table registered under name, defaulting to Standard.
func TableByName(name string) Table {
	if strings.EqualFold(strings.TrimSpace(name), Compact.name) {
		return Compact
	}
	return Standard
}

// Name returns the table identifier.
func (t Table) Name() string { return t.name }

// ResolveType maps unknown transaction types to expense.
func ResolveType(txType string) string {
	if txType == TypeIncome {
		return TypeIncome
	}
	return TypeExpense
}

func (t Table) rules(txType string) []rule {
	if ResolveType(txType) == TypeIncome {
		if len(t.income) == 0 {
			return standardIncome
		}
		return t.income
	}
	return t.expense
}

// Labels returns the candidate categories for a transaction type in table order.
func (t Table) Labels(txType string) []string {
	rules := t.rules(txType)
	labels := make([]string, 0, len(rules))
	for _, r := range rules {
		labels = append(labels, r.category)
	}
	return labels
}

// Match runs the keyword scan for description.
func (t Table) Match(description, txType string) Result {
	text := strings.ToLower(description)
	for _, r := range t.rules(txType) {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return Result{Category: r.category, Confidence: t.confidence, Source: SourceLocalKeyword}
			}
		}
	}
	return Result{Category: DefaultCategory, Confidence: defaultConfidence, Source: SourceLocalDefault}
}
