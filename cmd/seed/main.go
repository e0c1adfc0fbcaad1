package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"finanzas/internal/config"
	"finanzas/internal/database"
	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/gateway"
	"finanzas/internal/logger"
	"finanzas/internal/services"

	"github.com/brianvoe/gofakeit/v6"
)

type options struct {
	username string
	password string
	months   int
	seed     int64
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	var opts options
	flag.StringVar(&opts.username, "username", "", "demo username (random if empty)")
	flag.StringVar(&opts.password, "password", "demo-password", "demo password")
	flag.IntVar(&opts.months, "months", 6, "months of transaction history")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	flag.Parse()

	if err := run(opts); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run(opts options) error {
	if opts.months < 1 {
		return fmt.Errorf("months must be at least 1")
	}
	gofakeit.Seed(opts.seed)
	if opts.username == "" {
		opts.username = gofakeit.Username()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db := dbManager.DB()
	user, err := services.NewUserService(db).CreateUser(opts.username, opts.password)
	if errors.Is(err, apperrors.ErrDuplicateUsername) {
		return fmt.Errorf("user %q already exists", opts.username)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	ctx := context.Background()
	gw := gateway.New(db)
	log := logger.Get()

	txCount, err := seedTransactions(ctx, gw, user.ID, opts.months)
	if err != nil {
		return err
	}
	debtCount, err := seedDebts(ctx, gw, user.ID)
	if err != nil {
		return err
	}
	goalCount, err := seedGoals(ctx, gw, user.ID)
	if err != nil {
		return err
	}
	for _, name := range []string{"Freelance", "Inversiones"} {
		if err := gw.CreateTag(ctx, user.ID, domain.TransactionTypeIncome, name); err != nil {
			return fmt.Errorf("failed to create tag: %w", err)
		}
	}

	log.Infow("Seed complete",
		"username", opts.username,
		"transactions", txCount,
		"debts", debtCount,
		"goals", goalCount,
	)
	return nil
}

// seedTransactions books a monthly salary plus a handful of expenses for
// each month of history.
func seedTransactions(ctx context.Context, gw *gateway.Gateway, userID string, months int) (int, error) {
	today := domain.Today()
	start := today.Time.AddDate(0, -months, 0)
	salary := int64(gofakeit.Number(1_500_000, 4_000_000))
	count := 0

	for m := 0; m < months; m++ {
		monthStart := start.AddDate(0, m, 0)
		payday := domain.NewDate(monthStart.Year(), monthStart.Month(), 1)
		if _, err := gw.CreateTransaction(ctx, userID, domain.Transaction{
			Date:        payday,
			Type:        domain.TransactionTypeIncome,
			Category:    "Salario",
			Amount:      salary,
			Description: "Pago de nómina",
		}); err != nil {
			return count, fmt.Errorf("failed to create income: %w", err)
		}
		count++

		for i := 0; i < gofakeit.Number(4, 10); i++ {
			day := gofakeit.DateRange(monthStart, monthStart.AddDate(0, 1, -1))
			if day.After(today.Time) {
				continue
			}
			if _, err := gw.CreateTransaction(ctx, userID, domain.Transaction{
				Date:        domain.DateOf(day),
				Type:        domain.TransactionTypeExpense,
				Category:    gofakeit.RandomString(domain.DefaultExpenseTags),
				Amount:      int64(gofakeit.Number(10_000, 400_000)),
				Description: gofakeit.Sentence(4),
			}); err != nil {
				return count, fmt.Errorf("failed to create expense: %w", err)
			}
			count++
		}
	}
	return count, nil
}

func seedDebts(ctx context.Context, gw *gateway.Gateway, userID string) (int, error) {
	n := gofakeit.Number(1, 3)
	for i := 0; i < n; i++ {
		total := int64(gofakeit.Number(500_000, 10_000_000))
		rate := gofakeit.Float64Range(0.5, 3.5)
		day := gofakeit.Number(1, 28)
		if _, err := gw.CreateDebt(ctx, userID, domain.Debt{
			Name:         "Crédito " + gofakeit.Company(),
			TotalAmount:  total,
			Balance:      total - int64(gofakeit.Number(0, int(total/2))),
			Deadline:     domain.DateOf(gofakeit.FutureDate()).AddDays(365),
			Category:     domain.DefaultDebtCategory,
			InterestRate: &rate,
			PaymentDay:   &day,
		}); err != nil {
			return i, fmt.Errorf("failed to create debt: %w", err)
		}
	}
	return n, nil
}

func seedGoals(ctx context.Context, gw *gateway.Gateway, userID string) (int, error) {
	names := []string{"Fondo de emergencia", "Vacaciones", "Computador nuevo"}
	for i, name := range names {
		target := int64(gofakeit.Number(1_000_000, 8_000_000))
		if _, err := gw.CreateGoal(ctx, userID, domain.SavingsGoal{
			Name:          name,
			TargetAmount:  target,
			CurrentAmount: int64(gofakeit.Number(0, int(target))),
			Deadline:      domain.Today().AddDays(gofakeit.Number(30, 540)),
			Color:         gofakeit.HexColor(),
		}); err != nil {
			return i, fmt.Errorf("failed to create goal: %w", err)
		}
	}
	return len(names), nil
}
