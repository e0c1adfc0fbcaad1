package state

import (
	"context"
	"slices"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
)

// AddTag adds name to the vocabulary of t. Names are compared exactly as
// given. The Pending resolves to false when the name already exists, in which
// case nothing is persisted.
func (c *Container) AddTag(t domain.TransactionType, name string) *Pending[bool] {
	if !t.Valid() || name == "" {
		return resolved(false, apperrors.ErrInvalidInput)
	}

	c.mu.Lock()
	if slices.Contains(c.tags[t], name) {
		c.mu.Unlock()
		return resolved(false, nil)
	}
	c.tags[t] = append(c.tags[t], name)
	c.mu.Unlock()

	return spawn(c, true, func(ctx context.Context) (bool, error) {
		err := c.gw.CreateTag(ctx, c.userID, t, name)
		if err == nil {
			return true, nil
		}
		c.mu.Lock()
		if i := slices.Index(c.tags[t], name); i >= 0 {
			c.tags[t] = slices.Delete(c.tags[t], i, i+1)
		}
		c.mu.Unlock()
		return false, c.failed("add tag", name, err)
	})
}
