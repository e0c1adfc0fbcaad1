package gateway

import (
	"context"

	"gorm.io/gorm"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/models"
)

// ListDebts returns the user's debts in creation order.
func (g *Gateway) ListDebts(ctx context.Context, userID string) ([]domain.Debt, error) {
	var rows []models.Debt
	if err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, apperrors.ErrDebtNotFound)
	}
	out := make([]domain.Debt, 0, len(rows))
	for _, r := range rows {
		out = append(out, debtFromRow(r))
	}
	return out, nil
}

// CreateDebt inserts d and returns the stored record.
func (g *Gateway) CreateDebt(ctx context.Context, userID string, d domain.Debt) (domain.Debt, error) {
	row := debtToRow(userID, d)
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Debt{}, translate(err, apperrors.ErrDebtNotFound)
	}
	return debtFromRow(row), nil
}

// DeleteDebt removes one of the user's debts.
func (g *Gateway) DeleteDebt(ctx context.Context, userID, id string) error {
	res := g.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Debt{})
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrDebtNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrDebtNotFound
	}
	return nil
}

// Payment is the outcome of PayDebt.
type Payment struct {
	Balance     int64              `json:"balance"`
	Transaction domain.Transaction `json:"transaction"`
}

// PayDebt lowers the debt's balance by amount and records the linked
// expense in one database transaction. The decrement is applied in SQL so
// concurrent payments on the same debt both count.
func (g *Gateway) PayDebt(ctx context.Context, userID, debtID string, amount int64, expense domain.Transaction) (Payment, error) {
	var out Payment
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Debt{}).
			Where("id = ? AND user_id = ?", debtID, userID).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrDebtNotFound
		}

		var debt models.Debt
		if err := tx.Select("balance").Where("id = ?", debtID).First(&debt).Error; err != nil {
			return err
		}

		row := transactionToRow(userID, expense)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		out = Payment{Balance: debt.Balance, Transaction: transactionFromRow(row)}
		return nil
	})
	if err != nil {
		return Payment{}, translate(err, apperrors.ErrDebtNotFound)
	}
	return out, nil
}

// DebtsByUser groups debts by owner.
type DebtsByUser map[string][]domain.Debt

// ListScheduledDebts returns every unpaid debt that has a monthly payment
// day, across all users.
func (g *Gateway) ListScheduledDebts(ctx context.Context) (DebtsByUser, error) {
	var rows []models.Debt
	err := g.db.WithContext(ctx).
		Where("payment_day IS NOT NULL AND balance > 0").
		Order("user_id").Order("payment_day").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrDebtNotFound)
	}

	out := make(DebtsByUser)
	for _, r := range rows {
		out[r.UserID] = append(out[r.UserID], debtFromRow(r))
	}
	return out, nil
}
