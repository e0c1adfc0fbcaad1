package state

import (
	"context"
	"errors"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/uuid"
)

// AddTransaction inserts t at the head of the list under a temporary ID and
// persists it. On success the temporary entry is swapped for the stored one.
func (c *Container) AddTransaction(t domain.Transaction) *Pending[domain.Transaction] {
	t.ID = uuid.NewTemporary()

	c.mu.Lock()
	c.transactions = insertAt(c.transactions, 0, t)
	c.mu.Unlock()

	return spawn(c, t, func(ctx context.Context) (domain.Transaction, error) {
		created, err := c.gw.CreateTransaction(ctx, c.userID, t)
		c.mu.Lock()
		if err != nil {
			if i := indexByID(c.transactions, t.ID, transactionID); i >= 0 {
				c.transactions = removeAt(c.transactions, i)
			}
			c.mu.Unlock()
			return t, c.failed("add transaction", t.ID, err)
		}
		i := indexByID(c.transactions, t.ID, transactionID)
		if i >= 0 {
			c.transactions[i] = created
		}
		c.mu.Unlock()

		if i < 0 {
			// Deleted locally while the insert was in flight.
			c.discardRemote("transaction", created.ID, func() error {
				return c.gw.DeleteTransaction(ctx, c.userID, created.ID)
			})
		}
		return created, nil
	})
}

// DeleteTransaction removes the transaction locally and then remotely. A
// transaction that was never stored is only removed locally.
func (c *Container) DeleteTransaction(id string) *Pending[struct{}] {
	c.mu.Lock()
	i := indexByID(c.transactions, id, transactionID)
	if i < 0 {
		c.mu.Unlock()
		return resolved(struct{}{}, apperrors.ErrTransactionNotFound)
	}
	removed := c.transactions[i]
	c.transactions = removeAt(c.transactions, i)
	c.mu.Unlock()

	if uuid.IsTemporary(id) {
		return resolved(struct{}{}, nil)
	}

	return spawn(c, struct{}{}, func(ctx context.Context) (struct{}, error) {
		err := c.gw.DeleteTransaction(ctx, c.userID, id)
		if err == nil || errors.Is(err, apperrors.ErrTransactionNotFound) {
			return struct{}{}, nil
		}
		c.mu.Lock()
		c.transactions = insertAt(c.transactions, i, removed)
		c.mu.Unlock()
		return struct{}{}, c.failed("delete transaction", id, err)
	})
}

// discardRemote deletes a row whose local entry no longer exists.
func (c *Container) discardRemote(kind, id string, del func() error) {
	if err := del(); err != nil {
		c.log.Errorw("failed to discard orphaned row",
			"kind", kind,
			"id", id,
			"error", err,
		)
	}
}
