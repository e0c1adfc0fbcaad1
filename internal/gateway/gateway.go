// Package gateway persists application records in the hosted tables. It
// translates between the camelCase records used in memory and the
// snake_case rows of the database, and scopes every query by user.
package gateway

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finanzas/internal/errors"
)

// Gateway issues CRUD calls for transactions, debts, savings goals and tags.
type Gateway struct {
	db *gorm.DB
}

// New creates a Gateway over db.
func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// translate maps a driver error onto a sentinel, using notFound for missing rows.
func translate(err error, notFound *apperrors.AppError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
