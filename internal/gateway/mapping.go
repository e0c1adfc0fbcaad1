package gateway

import (
	"finanzas/internal/domain"
	"finanzas/internal/models"
)

func transactionFromRow(r models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:          r.ID,
		Date:        r.Date,
		Type:        domain.TransactionType(r.Type),
		Category:    r.Category,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

func transactionToRow(userID string, t domain.Transaction) models.Transaction {
	return models.Transaction{
		UserID:      userID,
		Date:        t.Date,
		Type:        string(t.Type),
		Category:    t.Category,
		Amount:      t.Amount,
		Description: t.Description,
	}
}

func debtFromRow(r models.Debt) domain.Debt {
	return domain.Debt{
		ID:           r.ID,
		Name:         r.Name,
		TotalAmount:  r.TotalAmount,
		Balance:      r.Balance,
		Deadline:     r.Deadline,
		Category:     r.Category,
		InterestRate: r.InterestRate,
		PaymentDay:   r.PaymentDay,
	}
}

func debtToRow(userID string, d domain.Debt) models.Debt {
	return models.Debt{
		UserID:       userID,
		Name:         d.Name,
		TotalAmount:  d.TotalAmount,
		Balance:      d.Balance,
		Deadline:     d.Deadline,
		Category:     d.Category,
		InterestRate: d.InterestRate,
		PaymentDay:   d.PaymentDay,
	}
}

func goalFromRow(r models.SavingsGoal) domain.SavingsGoal {
	return domain.SavingsGoal{
		ID:            r.ID,
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Deadline:      r.Deadline,
		Color:         r.Color,
	}
}

func goalToRow(userID string, g domain.SavingsGoal) models.SavingsGoal {
	return models.SavingsGoal{
		UserID:        userID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline,
		Color:         g.Color,
	}
}
