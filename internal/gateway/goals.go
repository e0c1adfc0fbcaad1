package gateway

import (
	"context"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/models"
)

// ListGoals returns the user's savings goals in creation order.
func (g *Gateway) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	var rows []models.SavingsGoal
	if err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, apperrors.ErrGoalNotFound)
	}
	out := make([]domain.SavingsGoal, 0, len(rows))
	for _, r := range rows {
		out = append(out, goalFromRow(r))
	}
	return out, nil
}

// CreateGoal inserts goal and returns the stored record.
func (g *Gateway) CreateGoal(ctx context.Context, userID string, goal domain.SavingsGoal) (domain.SavingsGoal, error) {
	row := goalToRow(userID, goal)
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.SavingsGoal{}, translate(err, apperrors.ErrGoalNotFound)
	}
	return goalFromRow(row), nil
}

// UpdateGoalAmount stores a new current amount. No other field is written.
func (g *Gateway) UpdateGoalAmount(ctx context.Context, userID, id string, current int64) error {
	res := g.db.WithContext(ctx).Model(&models.SavingsGoal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("current_amount", current)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrGoalNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// DeleteGoal removes one of the user's goals.
func (g *Gateway) DeleteGoal(ctx context.Context, userID, id string) error {
	res := g.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.SavingsGoal{})
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrGoalNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}
