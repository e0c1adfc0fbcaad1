package handlers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finanzas/internal/domain"
	"finanzas/internal/gateway"
	"finanzas/internal/models"
	"finanzas/internal/state"
	"finanzas/internal/testutil"
)

// flakyGateway is the real gateway with switchable write failures and a
// gate that holds writes until released.
type flakyGateway struct {
	*gateway.Gateway

	fail atomic.Bool

	mu   sync.Mutex
	gate chan struct{}
}

func (g *flakyGateway) hold() {
	g.mu.Lock()
	g.gate = make(chan struct{})
	g.mu.Unlock()
}

func (g *flakyGateway) release() {
	g.mu.Lock()
	if g.gate != nil {
		close(g.gate)
		g.gate = nil
	}
	g.mu.Unlock()
}

func (g *flakyGateway) before(ctx context.Context) error {
	g.mu.Lock()
	gate := g.gate
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if g.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func (g *flakyGateway) CreateTransaction(ctx context.Context, userID string, t domain.Transaction) (domain.Transaction, error) {
	if err := g.before(ctx); err != nil {
		return domain.Transaction{}, err
	}
	return g.Gateway.CreateTransaction(ctx, userID, t)
}

func (g *flakyGateway) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := g.before(ctx); err != nil {
		return err
	}
	return g.Gateway.DeleteTransaction(ctx, userID, id)
}

func (g *flakyGateway) CreateDebt(ctx context.Context, userID string, d domain.Debt) (domain.Debt, error) {
	if err := g.before(ctx); err != nil {
		return domain.Debt{}, err
	}
	return g.Gateway.CreateDebt(ctx, userID, d)
}

func (g *flakyGateway) DeleteDebt(ctx context.Context, userID, id string) error {
	if err := g.before(ctx); err != nil {
		return err
	}
	return g.Gateway.DeleteDebt(ctx, userID, id)
}

func (g *flakyGateway) PayDebt(ctx context.Context, userID, debtID string, amount int64, expense domain.Transaction) (gateway.Payment, error) {
	if err := g.before(ctx); err != nil {
		return gateway.Payment{}, err
	}
	return g.Gateway.PayDebt(ctx, userID, debtID, amount, expense)
}

func (g *flakyGateway) CreateGoal(ctx context.Context, userID string, goal domain.SavingsGoal) (domain.SavingsGoal, error) {
	if err := g.before(ctx); err != nil {
		return domain.SavingsGoal{}, err
	}
	return g.Gateway.CreateGoal(ctx, userID, goal)
}

func (g *flakyGateway) UpdateGoalAmount(ctx context.Context, userID, id string, current int64) error {
	if err := g.before(ctx); err != nil {
		return err
	}
	return g.Gateway.UpdateGoalAmount(ctx, userID, id, current)
}

func (g *flakyGateway) DeleteGoal(ctx context.Context, userID, id string) error {
	if err := g.before(ctx); err != nil {
		return err
	}
	return g.Gateway.DeleteGoal(ctx, userID, id)
}

func (g *flakyGateway) CreateTag(ctx context.Context, userID string, t domain.TransactionType, name string) error {
	if err := g.before(ctx); err != nil {
		return err
	}
	return g.Gateway.CreateTag(ctx, userID, t, name)
}

// ledgerEnv is a user with a database-backed state registry.
type ledgerEnv struct {
	db       *gorm.DB
	user     *models.User
	gw       *flakyGateway
	registry *state.Registry
}

const testSyncTimeout = 2 * time.Second

func setupLedger(t *testing.T) *ledgerEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	env := &ledgerEnv{
		db:   db,
		user: testutil.CreateTestUser(t, db),
		gw:   &flakyGateway{Gateway: gateway.New(db)},
	}
	env.registry = state.NewRegistry(env.gw, state.Options{PersistTimeout: 5 * time.Second})
	t.Cleanup(func() {
		env.gw.release()
		env.registry.Drain()
		testutil.TeardownTestDB(t, db)
	})
	return env
}

func (e *ledgerEnv) router(register func(r gin.IRoutes)) *gin.Engine {
	r := gin.New()
	register(r.Group("/", injectUserID(e.user.ID)))
	return r
}
