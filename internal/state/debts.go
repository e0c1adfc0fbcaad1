package state

import (
	"context"
	"errors"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/uuid"
)

// AddDebt appends d under a temporary ID and persists it.
func (c *Container) AddDebt(d domain.Debt) *Pending[domain.Debt] {
	d.ID = uuid.NewTemporary()
	if d.Category == "" {
		d.Category = domain.DefaultDebtCategory
	}

	c.mu.Lock()
	c.debts = append(c.debts, d)
	c.mu.Unlock()

	return spawn(c, d, func(ctx context.Context) (domain.Debt, error) {
		created, err := c.gw.CreateDebt(ctx, c.userID, d)
		c.mu.Lock()
		if err != nil {
			if i := indexByID(c.debts, d.ID, debtID); i >= 0 {
				c.debts = removeAt(c.debts, i)
			}
			c.mu.Unlock()
			return d, c.failed("add debt", d.ID, err)
		}
		i := indexByID(c.debts, d.ID, debtID)
		if i >= 0 {
			c.debts[i] = created
		}
		c.mu.Unlock()

		if i < 0 {
			c.discardRemote("debt", created.ID, func() error {
				return c.gw.DeleteDebt(ctx, c.userID, created.ID)
			})
		}
		return created, nil
	})
}

// DeleteDebt removes the debt locally and then remotely.
func (c *Container) DeleteDebt(id string) *Pending[struct{}] {
	c.mu.Lock()
	i := indexByID(c.debts, id, debtID)
	if i < 0 {
		c.mu.Unlock()
		return resolved(struct{}{}, apperrors.ErrDebtNotFound)
	}
	removed := c.debts[i]
	c.debts = removeAt(c.debts, i)
	c.mu.Unlock()

	if uuid.IsTemporary(id) {
		return resolved(struct{}{}, nil)
	}

	return spawn(c, struct{}{}, func(ctx context.Context) (struct{}, error) {
		err := c.gw.DeleteDebt(ctx, c.userID, id)
		if err == nil || errors.Is(err, apperrors.ErrDebtNotFound) {
			return struct{}{}, nil
		}
		c.mu.Lock()
		c.debts = insertAt(c.debts, i, removed)
		c.mu.Unlock()
		return struct{}{}, c.failed("delete debt", id, err)
	})
}

// PaymentResult is a debt after a payment together with the expense that
// records it.
type PaymentResult struct {
	Debt        domain.Debt        `json:"debt"`
	Transaction domain.Transaction `json:"transaction"`
}

// PayDebt lowers the debt's balance by amount and records a matching expense
// dated today. Both changes are confirmed or reverted together.
func (c *Container) PayDebt(id string, amount int64) *Pending[PaymentResult] {
	if amount <= 0 {
		return resolved(PaymentResult{}, apperrors.ErrInvalidAmount)
	}
	if uuid.IsTemporary(id) {
		return resolved(PaymentResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Debt is still being saved"))
	}

	c.mu.Lock()
	i := indexByID(c.debts, id, debtID)
	if i < 0 {
		c.mu.Unlock()
		return resolved(PaymentResult{}, apperrors.ErrDebtNotFound)
	}
	c.debts[i].Balance -= amount
	debt := c.debts[i]
	c.pendingPaid[id] += amount

	expense := domain.Transaction{
		ID:          uuid.NewTemporary(),
		Date:        c.Today(),
		Type:        domain.TransactionTypeExpense,
		Category:    debt.PaymentCategory(),
		Amount:      amount,
		Description: "Pago a: " + debt.Name,
	}
	c.transactions = insertAt(c.transactions, 0, expense)
	c.mu.Unlock()

	optimistic := PaymentResult{Debt: debt, Transaction: expense}
	return spawn(c, optimistic, func(ctx context.Context) (PaymentResult, error) {
		payment, err := c.gw.PayDebt(ctx, c.userID, id, amount, expense)

		c.mu.Lock()
		c.pendingPaid[id] -= amount
		if c.pendingPaid[id] == 0 {
			delete(c.pendingPaid, id)
		}
		if err != nil {
			if j := indexByID(c.debts, id, debtID); j >= 0 {
				c.debts[j].Balance += amount
			}
			if j := indexByID(c.transactions, expense.ID, transactionID); j >= 0 {
				c.transactions = removeAt(c.transactions, j)
			}
			c.mu.Unlock()
			return optimistic, c.failed("pay debt", id, err)
		}

		result := PaymentResult{Debt: debt, Transaction: payment.Transaction}
		if j := indexByID(c.debts, id, debtID); j >= 0 {
			// Stored balance minus payments that are still unconfirmed.
			c.debts[j].Balance = payment.Balance - c.pendingPaid[id]
			result.Debt = c.debts[j]
		}
		j := indexByID(c.transactions, expense.ID, transactionID)
		if j >= 0 {
			c.transactions[j] = payment.Transaction
		}
		c.mu.Unlock()

		if j < 0 {
			c.discardRemote("transaction", payment.Transaction.ID, func() error {
				return c.gw.DeleteTransaction(ctx, c.userID, payment.Transaction.ID)
			})
		}
		return result, nil
	})
}
