// Package state holds each logged-in user's collections in memory and
// mediates every change through an optimistic update that is persisted in
// the background. A change that cannot be persisted is reverted.
package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/gateway"
	"finanzas/internal/logger"
)

// Gateway is the persistence the container reconciles against.
type Gateway interface {
	ListTransactions(ctx context.Context, userID string, filter gateway.TransactionFilter) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, t domain.Transaction) (domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error

	ListDebts(ctx context.Context, userID string) ([]domain.Debt, error)
	CreateDebt(ctx context.Context, userID string, d domain.Debt) (domain.Debt, error)
	DeleteDebt(ctx context.Context, userID, id string) error
	PayDebt(ctx context.Context, userID, debtID string, amount int64, expense domain.Transaction) (gateway.Payment, error)

	ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
	CreateGoal(ctx context.Context, userID string, g domain.SavingsGoal) (domain.SavingsGoal, error)
	UpdateGoalAmount(ctx context.Context, userID, id string, current int64) error
	DeleteGoal(ctx context.Context, userID, id string) error

	ListTags(ctx context.Context, userID string, t domain.TransactionType) ([]string, error)
	CreateTag(ctx context.Context, userID string, t domain.TransactionType, name string) error
}

// DefaultPersistTimeout bounds each background persistence call.
const DefaultPersistTimeout = 15 * time.Second

// Options tunes a Container.
type Options struct {
	// PersistTimeout bounds each background gateway call.
	PersistTimeout time.Duration
	// Now is the clock used to date debt payments.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.PersistTimeout <= 0 {
		o.PersistTimeout = DefaultPersistTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Container is the in-memory copy of one user's data.
type Container struct {
	userID string
	gw     Gateway
	opts   Options
	log    *zap.SugaredLogger

	mu           sync.Mutex
	transactions []domain.Transaction
	debts        []domain.Debt
	goals        []domain.SavingsGoal
	tags         map[domain.TransactionType][]string
	// pendingPaid is the sum of unconfirmed payments per debt.
	pendingPaid map[string]int64

	inflight sync.WaitGroup
}

// Load fetches the user's five collections concurrently and builds a Container.
func Load(ctx context.Context, gw Gateway, userID string, opts Options) (*Container, error) {
	c := &Container{
		userID:      userID,
		gw:          gw,
		opts:        opts.withDefaults(),
		log:         logger.Get().With("user_id", userID),
		tags:        make(map[domain.TransactionType][]string),
		pendingPaid: make(map[string]int64),
	}

	var incomeTags, expenseTags []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.transactions, err = gw.ListTransactions(gctx, userID, gateway.TransactionFilter{})
		return err
	})
	g.Go(func() (err error) {
		c.debts, err = gw.ListDebts(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		c.goals, err = gw.ListGoals(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		incomeTags, err = gw.ListTags(gctx, userID, domain.TransactionTypeIncome)
		return err
	})
	g.Go(func() (err error) {
		expenseTags, err = gw.ListTags(gctx, userID, domain.TransactionTypeExpense)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStateNotLoaded, err)
	}

	c.tags[domain.TransactionTypeIncome] = mergeTags(domain.DefaultTags(domain.TransactionTypeIncome), incomeTags)
	c.tags[domain.TransactionTypeExpense] = mergeTags(domain.DefaultTags(domain.TransactionTypeExpense), expenseTags)
	if c.transactions == nil {
		c.transactions = []domain.Transaction{}
	}
	if c.debts == nil {
		c.debts = []domain.Debt{}
	}
	if c.goals == nil {
		c.goals = []domain.SavingsGoal{}
	}

	c.log.Debugw("state loaded",
		"transactions", len(c.transactions),
		"debts", len(c.debts),
		"goals", len(c.goals),
	)
	return c, nil
}

// mergeTags appends stored names to the defaults, skipping exact duplicates.
func mergeTags(defaults, stored []string) []string {
	seen := make(map[string]bool, len(defaults)+len(stored))
	out := make([]string, 0, len(defaults)+len(stored))
	for _, list := range [][]string{defaults, stored} {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// UserID returns the owner of the container.
func (c *Container) UserID() string { return c.userID }

// Today returns the container's current calendar day.
func (c *Container) Today() domain.Date {
	return domain.DateOf(c.opts.Now())
}

// Snapshot returns a copy of every collection.
func (c *Container) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Snapshot{
		Transactions: append([]domain.Transaction{}, c.transactions...),
		Debts:        append([]domain.Debt{}, c.debts...),
		Goals:        append([]domain.SavingsGoal{}, c.goals...),
		IncomeTags:   append([]string{}, c.tags[domain.TransactionTypeIncome]...),
		ExpenseTags:  append([]string{}, c.tags[domain.TransactionTypeExpense]...),
	}
}

// Transactions returns a copy of the transactions, newest first.
func (c *Container) Transactions() []domain.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Transaction{}, c.transactions...)
}

// Debts returns a copy of the debts.
func (c *Container) Debts() []domain.Debt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Debt{}, c.debts...)
}

// Goals returns a copy of the savings goals.
func (c *Container) Goals() []domain.SavingsGoal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.SavingsGoal{}, c.goals...)
}

// Tags returns the vocabulary for t: defaults first, then the user's own.
func (c *Container) Tags(t domain.TransactionType) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.tags[t]...)
}

// Wait blocks until every background persistence call has finished.
func (c *Container) Wait() {
	c.inflight.Wait()
}

// spawn runs call in the background with the container's persistence
// timeout and resolves the returned Pending with its result.
func spawn[T any](c *Container, optimistic T, call func(ctx context.Context) (T, error)) *Pending[T] {
	p := newPending(optimistic)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.PersistTimeout)
		defer cancel()
		p.resolve(call(ctx))
	}()
	return p
}

// failed logs a persistence failure that has been compensated and wraps it
// for the caller.
func (c *Container) failed(op, id string, err error) error {
	c.log.Warnw("persistence failed, local change reverted",
		"op", op,
		"id", id,
		"error", err,
	)
	return apperrors.Wrap(apperrors.ErrPersistenceFailed, fmt.Errorf("%s %s: %w", op, id, err))
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

func insertAt[T any](items []T, i int, item T) []T {
	if i < 0 || i > len(items) {
		i = len(items)
	}
	items = append(items, item)
	copy(items[i+1:], items[i:])
	items[i] = item
	return items
}

func removeAt[T any](items []T, i int) []T {
	return append(items[:i], items[i+1:]...)
}

func transactionID(t domain.Transaction) string { return t.ID }
func debtID(d domain.Debt) string               { return d.ID }
func goalID(g domain.SavingsGoal) string        { return g.ID }
