// Package export renders transactions as CSV.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Header is the first line of every export.
const Header = "Date,Type,Category,Amount,Currency,Description,Notes"

const dateLayout = "2006-01-02T15:04:05.000Z"

// Row is one exported transaction.
type Row struct {
	Date        time.Time
	Type        string
	Category    string
	Amount      float64
	Currency    string
	Description string
	Notes       string
}

// WriteCSV writes the header followed by one line per row, in the given order.
// Text columns are always quoted. Lines are separated by "\n" with no trailing
// newline.
func WriteCSV(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		if _, err := bw.WriteString("\n" + formatRow(r)); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	return bw.Flush()
}

// Filename returns the attachment name for an export generated at t.
func Filename(t time.Time) string {
	return "lifetrack-transactions-" + t.UTC().Format("20060102") + ".csv"
}

func formatRow(r Row) string {
	return strings.Join([]string{
		r.Date.UTC().Format(dateLayout),
		r.Type,
		quote(r.Category),
		decimal.NewFromFloat(r.Amount).StringFixed(2),
		r.Currency,
		quote(r.Description),
		quote(r.Notes),
	}, ",")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
