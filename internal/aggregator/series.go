package aggregator

import (
	"sort"

	"finanzas/internal/domain"
)

// BalancePoint is the running balance at the end of a day.
type BalancePoint struct {
	Date    domain.Date `json:"date"`
	Balance int64       `json:"balance"`
}

// BalanceSeries returns one point per distinct date, oldest first. When
// several transactions share a date the point holds the balance after the
// last of them.
func BalanceSeries(transactions []domain.Transaction) []BalancePoint {
	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := []BalancePoint{}
	var running int64
	for _, t := range sorted {
		switch t.Type {
		case domain.TransactionTypeIncome:
			running += t.Amount
		case domain.TransactionTypeExpense:
			running -= t.Amount
		}
		if n := len(points); n > 0 && points[n-1].Date.Equal(t.Date) {
			points[n-1].Balance = running
			continue
		}
		points = append(points, BalancePoint{Date: t.Date, Balance: running})
	}
	return points
}
