package aggregator

import (
	"fmt"
	"time"

	"finanzas/internal/domain"
)

// EventKindDebtDue marks a recurring debt payment day.
const EventKindDebtDue = "debt_due"

// CalendarEvent is a non-transaction marker on a calendar day.
type CalendarEvent struct {
	Kind   string `json:"kind"`
	DebtID string `json:"debtId"`
	Label  string `json:"label"`
}

// DayBucket collects everything that happened on one day of a month.
type DayBucket struct {
	Day          int                  `json:"day"`
	Income       int64                `json:"income"`
	Expense      int64                `json:"expense"`
	Events       []CalendarEvent      `json:"events"`
	Transactions []domain.Transaction `json:"transactions"`
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CalendarBuckets groups the transactions dated in year/month by day and
// marks every debt's payment day. Payment days recur monthly, so the marker
// is added for any month that has that day.
func CalendarBuckets(transactions []domain.Transaction, debts []domain.Debt, year int, month time.Month) map[int]*DayBucket {
	buckets := make(map[int]*DayBucket)
	bucket := func(day int) *DayBucket {
		b, ok := buckets[day]
		if !ok {
			b = &DayBucket{Day: day, Events: []CalendarEvent{}, Transactions: []domain.Transaction{}}
			buckets[day] = b
		}
		return b
	}

	for _, t := range transactions {
		if t.Date.Year() != year || t.Date.Month() != month {
			continue
		}
		b := bucket(t.Date.Day())
		switch t.Type {
		case domain.TransactionTypeIncome:
			b.Income += t.Amount
		case domain.TransactionTypeExpense:
			b.Expense += t.Amount
		}
		b.Transactions = append(b.Transactions, t)
	}

	days := DaysInMonth(year, month)
	for _, d := range debts {
		if d.PaymentDay == nil || *d.PaymentDay < 1 || *d.PaymentDay > days {
			continue
		}
		b := bucket(*d.PaymentDay)
		b.Events = append(b.Events, CalendarEvent{
			Kind:   EventKindDebtDue,
			DebtID: d.ID,
			Label:  fmt.Sprintf("Vencimiento: %s", d.Name),
		})
	}
	return buckets
}
