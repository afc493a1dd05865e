// Package extract holds the account statement returned by the ledger service
// and the view state derived from it.
package extract

import (
	"fmt"
	"time"

	"github.com/amiskov/simple-ledger/pkg/money"
)

// EmptyStatement is shown instead of an empty operation list.
const EmptyStatement = "no operations performed"

const dateLayout = "2006-01-02"

var createdAtLayouts = []string{
	TimeLayout,
	time.RFC3339,
	dateLayout,
}

func (t OperationType) Label() string {
	if t == Deposit {
		return "Deposit"
	}
	return "Withdrawal"
}

// Line renders the operation as a statement line.
func (o *Operation) Line() string {
	return fmt.Sprintf("%s: %s — %s", o.Type.Label(), money.Format(o.Amount), o.CreatedAt)
}

// Day returns the calendar date of CreatedAt in loc. Timestamps without a zone
// are taken as already being in loc. When no full layout matches, the leading
// "YYYY-MM-DD" is used.
func (o *Operation) Day(loc *time.Location) (time.Time, bool) {
	for _, layout := range createdAtLayouts {
		ts, err := time.ParseInLocation(layout, o.CreatedAt, loc)
		if err != nil {
			continue
		}
		y, m, d := ts.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	}
	if len(o.CreatedAt) >= len(dateLayout) {
		if day, err := time.ParseInLocation(dateLayout, o.CreatedAt[:len(dateLayout)], loc); err == nil {
			return day, true
		}
	}
	return time.Time{}, false
}

// Statement returns one line per operation in server order, or nil when
// there is nothing to show.
func (e *Extract) Statement() []string {
	if len(e.Operations) == 0 {
		return nil
	}
	lines := make([]string, 0, len(e.Operations))
	for _, o := range e.Operations {
		lines = append(lines, o.Line())
	}
	return lines
}

// WithdrawalsOn counts withdrawals made on the calendar day of now.
func (e *Extract) WithdrawalsOn(now time.Time) int {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	n := 0
	for _, o := range e.Operations {
		if o.Type != Withdraw {
			continue
		}
		day, ok := o.Day(loc)
		if ok && day.Equal(today) {
			n++
		}
	}
	return n
}

// RemainingWithdrawals is how many withdrawals are still allowed today.
// It never goes below zero.
func (e *Extract) RemainingWithdrawals(now time.Time) int {
	left := MaxWithdrawalsPerDay - e.WithdrawalsOn(now)
	if left < 0 {
		return 0
	}
	return left
}
