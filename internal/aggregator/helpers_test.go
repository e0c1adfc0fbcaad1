package aggregator

import (
	"time"

	"finanzas/internal/domain"
)

func day(y int, m time.Month, d int) domain.Date {
	return domain.NewDate(y, m, d)
}

func income(date domain.Date, category string, amount int64) domain.Transaction {
	return domain.Transaction{Date: date, Type: domain.TransactionTypeIncome, Category: category, Amount: amount}
}

func expense(date domain.Date, category string, amount int64) domain.Transaction {
	return domain.Transaction{Date: date, Type: domain.TransactionTypeExpense, Category: category, Amount: amount}
}

func intPtr(n int) *int { return &n }
