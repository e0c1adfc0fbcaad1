package aggregator

import (
	"github.com/shopspring/decimal"

	"finanzas/internal/domain"
)

// Cadence tells how often the required savings amount must be set aside.
type Cadence string

const (
	CadenceCompleted Cadence = "completed"
	CadenceMonthly   Cadence = "monthly"
	CadenceWeekly    Cadence = "weekly"
	CadenceOverdue   Cadence = "overdue"
)

// RequiredSavings is the contribution needed to reach a goal on time.
type RequiredSavings struct {
	Amount  decimal.Decimal `json:"amount"`
	Cadence Cadence         `json:"cadence"`
}

// ComputeRequiredSavings works out how much still has to be saved per
// period. With at least one calendar month left the remainder is spread
// monthly. Inside the deadline's month it is spread over days/7 weeks, a
// continuous rate rather than a count of payments. A past deadline needs
// the whole remainder at once.
func ComputeRequiredSavings(goal domain.SavingsGoal, asOf domain.Date) RequiredSavings {
	remaining := goal.TargetAmount - goal.CurrentAmount
	if remaining <= 0 {
		return RequiredSavings{Amount: decimal.Zero, Cadence: CadenceCompleted}
	}
	rem := decimal.NewFromInt(remaining)
	if !goal.Deadline.IsSet() {
		return RequiredSavings{Amount: rem, Cadence: CadenceOverdue}
	}

	months := (goal.Deadline.Year()-asOf.Year())*12 + int(goal.Deadline.Month()) - int(asOf.Month())
	if months > 0 {
		return RequiredSavings{
			Amount:  rem.Div(decimal.NewFromInt(int64(months))).Round(2),
			Cadence: CadenceMonthly,
		}
	}

	days := asOf.DaysUntil(goal.Deadline)
	if days <= 0 {
		return RequiredSavings{Amount: rem, Cadence: CadenceOverdue}
	}
	weekly := rem.Mul(decimal.NewFromInt(7)).Div(decimal.NewFromInt(int64(days)))
	return RequiredSavings{Amount: weekly.Round(2), Cadence: CadenceWeekly}
}

// GoalProgress returns the completed percentage capped at 100.
// A goal without a positive target reports 0.
func GoalProgress(goal domain.SavingsGoal) int64 {
	if goal.TargetAmount <= 0 {
		return 0
	}
	p := percentOf(goal.CurrentAmount, goal.TargetAmount)
	if p > 100 {
		return 100
	}
	return p
}

// GoalView pairs a goal with its derived figures.
type GoalView struct {
	domain.SavingsGoal
	Progress int64           `json:"progress"`
	Required RequiredSavings `json:"required"`
}

// DescribeGoals derives progress and required savings for each goal.
func DescribeGoals(goals []domain.SavingsGoal, asOf domain.Date) []GoalView {
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, GoalView{
			SavingsGoal: g,
			Progress:    GoalProgress(g),
			Required:    ComputeRequiredSavings(g, asOf),
		})
	}
	return views
}

// ReachedTarget reports whether raising a goal from before to after crosses its target.
func ReachedTarget(target, before, after int64) bool {
	return after >= target && before < target
}
