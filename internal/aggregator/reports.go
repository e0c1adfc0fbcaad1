package aggregator

import (
	"fmt"

	"finanzas/internal/domain"
)

// Timeframe is a trailing reporting window.
type Timeframe string

const (
	Timeframe1M Timeframe = "1M"
	Timeframe3M Timeframe = "3M"
	Timeframe6M Timeframe = "6M"
	Timeframe1Y Timeframe = "1Y"
)

// topReportCategories is how many expense categories a period report lists.
const topReportCategories = 3

// ParseTimeframe validates a timeframe code.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(s); tf {
	case Timeframe1M, Timeframe3M, Timeframe6M, Timeframe1Y:
		return tf, nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}

// Months returns the window length in months.
func (tf Timeframe) Months() int {
	switch tf {
	case Timeframe3M:
		return 3
	case Timeframe6M:
		return 6
	case Timeframe1Y:
		return 12
	default:
		return 1
	}
}

// Label is the period name used in reports and advisory prompts.
func (tf Timeframe) Label() string {
	switch tf {
	case Timeframe3M:
		return "Trimestral"
	case Timeframe6M:
		return "Semestral"
	case Timeframe1Y:
		return "Anual"
	default:
		return "Mensual"
	}
}

// PeriodReport summarises the transactions of a trailing window.
type PeriodReport struct {
	Timeframe     Timeframe       `json:"timeframe"`
	Label         string          `json:"label"`
	From          domain.Date     `json:"from"`
	To            domain.Date     `json:"to"`
	Income        int64           `json:"income"`
	Expense       int64           `json:"expense"`
	Balance       int64           `json:"balance"`
	TopCategories []CategoryTotal `json:"topCategories"`
}

// FilterBetween returns the transactions dated from from through to.
func FilterBetween(transactions []domain.Transaction, from, to domain.Date) []domain.Transaction {
	out := []domain.Transaction{}
	for _, t := range transactions {
		if !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out
}

// ComputePeriodReport reports on the transactions dated within tf up to and
// including today. Future-dated entries are left out.
func ComputePeriodReport(transactions []domain.Transaction, tf Timeframe, today domain.Date) PeriodReport {
	from := domain.Date{Time: today.AddDate(0, -tf.Months(), 0)}
	window := FilterBetween(transactions, from, today)
	cmp := CompareIncomeExpense(window)
	return PeriodReport{
		Timeframe:     tf,
		Label:         tf.Label(),
		From:          from,
		To:            today,
		Income:        cmp.Income,
		Expense:       cmp.Expense,
		Balance:       cmp.Income - cmp.Expense,
		TopCategories: TopCategories(window, domain.TransactionTypeExpense, topReportCategories),
	}
}
