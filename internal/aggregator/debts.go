package aggregator

import "finanzas/internal/domain"

// DebtView pairs a debt with its derived display state.
type DebtView struct {
	domain.Debt
	Paid        bool  `json:"paid"`
	PaidPercent int64 `json:"paidPercent"`
	DaysLeft    *int  `json:"daysLeft,omitempty"`
}

// IsPaid reports whether nothing remains owed on d.
func IsPaid(d domain.Debt) bool {
	return d.Balance <= 0
}

// DescribeDebt derives the paid state, paid percentage and days to deadline.
func DescribeDebt(d domain.Debt, today domain.Date) DebtView {
	v := DebtView{Debt: d, Paid: IsPaid(d)}
	if d.TotalAmount > 0 {
		v.PaidPercent = percentOf(d.TotalAmount-d.Balance, d.TotalAmount)
	}
	if d.Deadline.IsSet() {
		days := today.DaysUntil(d.Deadline)
		v.DaysLeft = &days
	}
	return v
}

// DescribeDebts applies DescribeDebt to every debt.
func DescribeDebts(debts []domain.Debt, today domain.Date) []DebtView {
	views := make([]DebtView, 0, len(debts))
	for _, d := range debts {
		views = append(views, DescribeDebt(d, today))
	}
	return views
}

// Reminder is a debt payment falling due soon.
type Reminder struct {
	DebtID  string      `json:"debtId"`
	Name    string      `json:"name"`
	Balance int64       `json:"balance"`
	DueOn   domain.Date `json:"dueOn"`
	InDays  int         `json:"inDays"`
}

// DueReminders lists unpaid debts whose next monthly payment day falls
// within window days of today, soonest first.
func DueReminders(debts []domain.Debt, today domain.Date, window int) []Reminder {
	reminders := []Reminder{}
	for offset := 0; offset <= window; offset++ {
		day := today.AddDays(offset)
		for _, d := range debts {
			if IsPaid(d) || d.PaymentDay == nil {
				continue
			}
			if dueDay(*d.PaymentDay, day) == day.Day() {
				reminders = append(reminders, Reminder{
					DebtID:  d.ID,
					Name:    d.Name,
					Balance: d.Balance,
					DueOn:   day,
					InDays:  offset,
				})
			}
		}
	}
	return reminders
}

// dueDay clamps a payment day to the length of day's month, so a debt paid
// on the 31st falls due on the last day of shorter months.
func dueDay(paymentDay int, day domain.Date) int {
	last := DaysInMonth(day.Year(), day.Month())
	if paymentDay > last {
		return last
	}
	return paymentDay
}
