package gateway

import (
	"context"

	"gorm.io/gorm/clause"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/models"
)

// ListTags returns the names of the user's stored tags of type t, oldest first.
func (g *Gateway) ListTags(ctx context.Context, userID string, t domain.TransactionType) ([]string, error) {
	var names []string
	err := g.db.WithContext(ctx).Model(&models.Tag{}).
		Where("user_id = ? AND type = ?", userID, string(t)).
		Order("created_at ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrNotFound)
	}
	return names, nil
}

// CreateTag stores a tag. Storing an existing tag again is a no-op.
func (g *Gateway) CreateTag(ctx context.Context, userID string, t domain.TransactionType, name string) error {
	row := models.Tag{UserID: userID, Type: string(t), Name: name}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	return translate(err, apperrors.ErrNotFound)
}
