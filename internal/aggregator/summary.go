package aggregator

import (
	"sort"

	"finanzas/internal/domain"
)

// Summary is the headline figure set shown on the dashboard.
type Summary struct {
	TotalIncome      int64         `json:"totalIncome"`
	TotalExpense     int64         `json:"totalExpense"`
	NetBalance       int64         `json:"netBalance"`
	SavingsRate      int64         `json:"savingsRate"`
	TotalDebt        int64         `json:"totalDebt"`
	ProjectedSavings int64         `json:"projectedSavings"`
	UpcomingPayments []domain.Debt `json:"upcomingPayments"`
}

// ComputeSummary totals transactions by type and lists the debts whose
// deadline is today or later, earliest first.
func ComputeSummary(transactions []domain.Transaction, debts []domain.Debt, today domain.Date) Summary {
	var s Summary
	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionTypeIncome:
			s.TotalIncome += t.Amount
		case domain.TransactionTypeExpense:
			s.TotalExpense += t.Amount
		}
	}
	s.NetBalance = s.TotalIncome - s.TotalExpense
	if s.TotalIncome > 0 {
		s.SavingsRate = percentOf(s.NetBalance, s.TotalIncome)
	}
	if s.NetBalance > 0 {
		s.ProjectedSavings = s.NetBalance
	}

	s.UpcomingPayments = []domain.Debt{}
	for _, d := range debts {
		s.TotalDebt += d.Balance
		if d.Deadline.IsSet() && !d.Deadline.Before(today) {
			s.UpcomingPayments = append(s.UpcomingPayments, d)
		}
	}
	sort.SliceStable(s.UpcomingPayments, func(i, j int) bool {
		return s.UpcomingPayments[i].Deadline.Before(s.UpcomingPayments[j].Deadline)
	})
	return s
}

// IncomeVsExpense is the two-bar comparison used by the dashboard chart.
type IncomeVsExpense struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
}

// CompareIncomeExpense sums both sides of the ledger.
func CompareIncomeExpense(transactions []domain.Transaction) IncomeVsExpense {
	s := ComputeSummary(transactions, nil, domain.Date{})
	return IncomeVsExpense{Income: s.TotalIncome, Expense: s.TotalExpense}
}
