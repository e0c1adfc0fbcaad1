package state

import (
	"context"
	"fmt"
	"sync"

	"finanzas/internal/domain"
	"finanzas/internal/gateway"
)

// mockGateway succeeds by default; set a function field to override one call.
type mockGateway struct {
	listTransactionsFn  func(ctx context.Context, userID string, filter gateway.TransactionFilter) ([]domain.Transaction, error)
	createTransactionFn func(ctx context.Context, userID string, t domain.Transaction) (domain.Transaction, error)
	deleteTransactionFn func(ctx context.Context, userID, id string) error
	listDebtsFn         func(ctx context.Context, userID string) ([]domain.Debt, error)
	createDebtFn        func(ctx context.Context, userID string, d domain.Debt) (domain.Debt, error)
	deleteDebtFn        func(ctx context.Context, userID, id string) error
	payDebtFn           func(ctx context.Context, userID, debtID string, amount int64, expense domain.Transaction) (gateway.Payment, error)
	listGoalsFn         func(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
	createGoalFn        func(ctx context.Context, userID string, g domain.SavingsGoal) (domain.SavingsGoal, error)
	updateGoalAmountFn  func(ctx context.Context, userID, id string, current int64) error
	deleteGoalFn        func(ctx context.Context, userID, id string) error
	listTagsFn          func(ctx context.Context, userID string, t domain.TransactionType) ([]string, error)
	createTagFn         func(ctx context.Context, userID string, t domain.TransactionType, name string) error

	mu  sync.Mutex
	seq int
}

func (m *mockGateway) nextID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("srv-%d", m.seq)
}

func (m *mockGateway) ListTransactions(ctx context.Context, userID string, filter gateway.TransactionFilter) ([]domain.Transaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockGateway) CreateTransaction(ctx context.Context, userID string, t domain.Transaction) (domain.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(ctx, userID, t)
	}
	t.ID = m.nextID()
	return t, nil
}

func (m *mockGateway) DeleteTransaction(ctx context.Context, userID, id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(ctx, userID, id)
	}
	return nil
}

func (m *mockGateway) ListDebts(ctx context.Context, userID string) ([]domain.Debt, error) {
	if m.listDebtsFn != nil {
		return m.listDebtsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGateway) CreateDebt(ctx context.Context, userID string, d domain.Debt) (domain.Debt, error) {
	if m.createDebtFn != nil {
		return m.createDebtFn(ctx, userID, d)
	}
	d.ID = m.nextID()
	return d, nil
}

func (m *mockGateway) DeleteDebt(ctx context.Context, userID, id string) error {
	if m.deleteDebtFn != nil {
		return m.deleteDebtFn(ctx, userID, id)
	}
	return nil
}

func (m *mockGateway) PayDebt(ctx context.Context, userID, debtID string, amount int64, expense domain.Transaction) (gateway.Payment, error) {
	if m.payDebtFn != nil {
		return m.payDebtFn(ctx, userID, debtID, amount, expense)
	}
	expense.ID = m.nextID()
	return gateway.Payment{Transaction: expense}, nil
}

func (m *mockGateway) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	if m.listGoalsFn != nil {
		return m.listGoalsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGateway) CreateGoal(ctx context.Context, userID string, g domain.SavingsGoal) (domain.SavingsGoal, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(ctx, userID, g)
	}
	g.ID = m.nextID()
	return g, nil
}

func (m *mockGateway) UpdateGoalAmount(ctx context.Context, userID, id string, current int64) error {
	if m.updateGoalAmountFn != nil {
		return m.updateGoalAmountFn(ctx, userID, id, current)
	}
	return nil
}

func (m *mockGateway) DeleteGoal(ctx context.Context, userID, id string) error {
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(ctx, userID, id)
	}
	return nil
}

func (m *mockGateway) ListTags(ctx context.Context, userID string, t domain.TransactionType) ([]string, error) {
	if m.listTagsFn != nil {
		return m.listTagsFn(ctx, userID, t)
	}
	return nil, nil
}

func (m *mockGateway) CreateTag(ctx context.Context, userID string, t domain.TransactionType, name string) error {
	if m.createTagFn != nil {
		return m.createTagFn(ctx, userID, t, name)
	}
	return nil
}
