package gateway

import (
	"context"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/models"
)

// TransactionFilter narrows ListTransactions.
type TransactionFilter struct {
	Type *domain.TransactionType
}

// ListTransactions returns the user's transactions, newest first.
func (g *Gateway) ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error) {
	q := g.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}

	var rows []models.Transaction
	if err := q.Order("date DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, translate(err, apperrors.ErrTransactionNotFound)
	}

	out := make([]domain.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, transactionFromRow(r))
	}
	return out, nil
}

// CreateTransaction inserts t and returns the stored record with its server ID.
func (g *Gateway) CreateTransaction(ctx context.Context, userID string, t domain.Transaction) (domain.Transaction, error) {
	row := transactionToRow(userID, t)
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Transaction{}, translate(err, apperrors.ErrTransactionNotFound)
	}
	return transactionFromRow(row), nil
}

// DeleteTransaction removes one of the user's transactions.
func (g *Gateway) DeleteTransaction(ctx context.Context, userID, id string) error {
	res := g.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrTransactionNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
