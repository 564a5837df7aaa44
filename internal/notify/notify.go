// Package notify derives reminder notifications from a user's current state.
package notify

import (
	"fmt"
	"math"
	"time"
)

const (
	reminderGap        = 24 * time.Hour
	deadlineWindowDays = 3
	lowConfidence      = 0.5
)

// Notification is a single reminder shown to the user.
type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

type Goal struct {
	ID        string
	Title     string
	Deadline  *time.Time
	Completed bool
}

type Activity struct {
	ID              string
	Name            string
	Frequency       string
	LastCompletedAt *time.Time
}

// Transaction is the most recently created transaction.
type Transaction struct {
	ID           string
	Type         string
	AIConfidence *float64
}

type Input struct {
	DailyReminder       bool
	LastExpenseLoggedAt *time.Time
	Goals               []Goal
	Activities          []Activity
	LatestTransaction   *Transaction
	Now                 time.Time
}

// Build returns the notifications for in, in a stable order: expense reminder,
// goal deadlines, activity nudges, then the category review prompt.
func Build(in Input) []Notification {
	out := make([]Notification, 0)

	if in.DailyReminder && olderThan(in.LastExpenseLoggedAt, in.Now, reminderGap) {
		out = append(out, Notification{
			ID:      "expense-reminder",
			Type:    "reminder",
			Message: "Log today's expenses to keep your streak alive.",
			Action:  "log-expense",
		})
	}

	for _, g := range in.Goals {
		if g.Completed || g.Deadline == nil {
			continue
		}
		days := daysUntil(*g.Deadline, in.Now)
		if days < 0 || days > deadlineWindowDays {
			continue
		}
		out = append(out, Notification{
			ID:      "goal-" + g.ID,
			Type:    "goal",
			Message: fmt.Sprintf("%q deadline is %d day(s) away.", g.Title, days),
			Action:  "view-goals",
		})
	}

	for _, a := range in.Activities {
		if a.Frequency != "daily" || !olderThan(a.LastCompletedAt, in.Now, reminderGap) {
			continue
		}
		out = append(out, Notification{
			ID:      "activity-" + a.ID,
			Type:    "activity",
			Message: fmt.Sprintf("Keep your %s streak going.", a.Name),
			Action:  "view-activities",
		})
	}

	if tx := in.LatestTransaction; tx != nil && tx.Type == "expense" && tx.AIConfidence != nil &&
		*tx.AIConfidence > 0 && *tx.AIConfidence < lowConfidence {
		out = append(out, Notification{
			ID:      "txn-" + tx.ID,
			Type:    "ai-review",
			Message: "Review the category we suggested for your latest expense.",
			Action:  "review-transaction",
		})
	}

	return out
}

// olderThan reports whether at is missing or more than gap before now.
func olderThan(at *time.Time, now time.Time, gap time.Duration) bool {
	return at == nil || now.Sub(*at) > gap
}

func daysUntil(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}
