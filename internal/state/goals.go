package state

import (
	"context"
	"errors"

	"finanzas/internal/aggregator"
	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/uuid"
)

// AddGoal appends g under a temporary ID and persists it.
func (c *Container) AddGoal(g domain.SavingsGoal) *Pending[domain.SavingsGoal] {
	g.ID = uuid.NewTemporary()

	c.mu.Lock()
	c.goals = append(c.goals, g)
	c.mu.Unlock()

	return spawn(c, g, func(ctx context.Context) (domain.SavingsGoal, error) {
		created, err := c.gw.CreateGoal(ctx, c.userID, g)
		c.mu.Lock()
		if err != nil {
			if i := indexByID(c.goals, g.ID, goalID); i >= 0 {
				c.goals = removeAt(c.goals, i)
			}
			c.mu.Unlock()
			return g, c.failed("add goal", g.ID, err)
		}
		i := indexByID(c.goals, g.ID, goalID)
		if i >= 0 {
			c.goals[i] = created
		}
		c.mu.Unlock()

		if i < 0 {
			c.discardRemote("goal", created.ID, func() error {
				return c.gw.DeleteGoal(ctx, c.userID, created.ID)
			})
		}
		return created, nil
	})
}

// UpdateGoal replaces the local goal with g. Only the current amount is
// persisted.
func (c *Container) UpdateGoal(g domain.SavingsGoal) *Pending[domain.SavingsGoal] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateGoalLocked(g)
}

// ContributeToGoal adds amount to the goal's current amount. The boolean
// reports whether this contribution took the goal from below its target to
// at or above it.
func (c *Container) ContributeToGoal(id string, amount int64) (*Pending[domain.SavingsGoal], bool) {
	if amount <= 0 {
		return resolved(domain.SavingsGoal{}, apperrors.ErrInvalidAmount), false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := indexByID(c.goals, id, goalID)
	if i < 0 {
		return resolved(domain.SavingsGoal{}, apperrors.ErrGoalNotFound), false
	}
	g := c.goals[i]
	before := g.CurrentAmount
	g.CurrentAmount += amount
	reached := aggregator.ReachedTarget(g.TargetAmount, before, g.CurrentAmount)
	return c.updateGoalLocked(g), reached
}

func (c *Container) updateGoalLocked(g domain.SavingsGoal) *Pending[domain.SavingsGoal] {
	if uuid.IsTemporary(g.ID) {
		return resolved(g, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal is still being saved"))
	}
	i := indexByID(c.goals, g.ID, goalID)
	if i < 0 {
		return resolved(g, apperrors.ErrGoalNotFound)
	}
	previous := c.goals[i]
	c.goals[i] = g

	return spawn(c, g, func(ctx context.Context) (domain.SavingsGoal, error) {
		err := c.gw.UpdateGoalAmount(ctx, c.userID, g.ID, g.CurrentAmount)
		if err == nil {
			return g, nil
		}
		c.mu.Lock()
		// Leave newer local edits alone.
		if j := indexByID(c.goals, g.ID, goalID); j >= 0 && c.goals[j] == g {
			c.goals[j] = previous
		}
		c.mu.Unlock()
		return g, c.failed("update goal", g.ID, err)
	})
}

// DeleteGoal removes the goal locally and then remotely.
func (c *Container) DeleteGoal(id string) *Pending[struct{}] {
	c.mu.Lock()
	i := indexByID(c.goals, id, goalID)
	if i < 0 {
		c.mu.Unlock()
		return resolved(struct{}{}, apperrors.ErrGoalNotFound)
	}
	removed := c.goals[i]
	c.goals = removeAt(c.goals, i)
	c.mu.Unlock()

	if uuid.IsTemporary(id) {
		return resolved(struct{}{}, nil)
	}

	return spawn(c, struct{}{}, func(ctx context.Context) (struct{}, error) {
		err := c.gw.DeleteGoal(ctx, c.userID, id)
		if err == nil || errors.Is(err, apperrors.ErrGoalNotFound) {
			return struct{}{}, nil
		}
		c.mu.Lock()
		c.goals = insertAt(c.goals, i, removed)
		c.mu.Unlock()
		return struct{}{}, c.failed("delete goal", id, err)
	})
}
