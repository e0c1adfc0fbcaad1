// Package reminders finds debts whose monthly payment day is near and
// hands them to a Notifier, either on a cron schedule or on demand.
package reminders

import (
	"context"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"finanzas/internal/aggregator"
	"finanzas/internal/domain"
	"finanzas/internal/gateway"
	"finanzas/internal/logger"
)

// DefaultWindowDays is how far ahead payment days are considered.
const DefaultWindowDays = 3

// Source lists every unpaid debt that has a payment day, grouped by user.
type Source interface {
	ListScheduledDebts(ctx context.Context) (gateway.DebtsByUser, error)
}

// Notifier delivers one user's reminders.
type Notifier interface {
	Notify(ctx context.Context, userID string, reminders []aggregator.Reminder) error
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, userID string, reminders []aggregator.Reminder) error {
	for _, r := range reminders {
		logger.Get().Infow("Debt payment due",
			"user_id", userID,
			"debt_id", r.DebtID,
			"debt", r.Name,
			"balance", r.Balance,
			"due_on", r.DueOn.String(),
			"in_days", r.InDays,
		)
	}
	return nil
}

// Result summarises one run.
type Result struct {
	Users     int `json:"users"`
	Reminders int `json:"reminders"`
	Failed    int `json:"failed"`
}

// Runner computes and delivers reminders for every user.
type Runner struct {
	source   Source
	notifier Notifier
	window   int
	now      func() time.Time
}

// NewRunner creates a Runner. A negative window falls back to DefaultWindowDays.
func NewRunner(source Source, notifier Notifier, window int) *Runner {
	if window < 0 {
		window = DefaultWindowDays
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Runner{source: source, notifier: notifier, window: window, now: time.Now}
}

// Run delivers today's reminders. A failing notification is logged and
// counted; the remaining users are still processed.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	byUser, err := r.source.ListScheduledDebts(ctx)
	if err != nil {
		return Result{}, err
	}

	today := domain.DateOf(r.now())
	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	var res Result
	for _, userID := range userIDs {
		due := aggregator.DueReminders(byUser[userID], today, r.window)
		if len(due) == 0 {
			continue
		}
		if err := r.notifier.Notify(ctx, userID, due); err != nil {
			logger.Get().Errorw("Failed to deliver reminders", "user_id", userID, "error", err)
			res.Failed++
			continue
		}
		res.Users++
		res.Reminders += len(due)
	}

	logger.Get().Infow("Reminder run complete",
		"users", res.Users,
		"reminders", res.Reminders,
		"failed", res.Failed,
	)
	return res, nil
}

// Schedule registers runner on a cron schedule. Each run is bounded by
// timeout. The caller starts and stops the returned scheduler.
func Schedule(spec string, runner *Runner, timeout time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := runner.Run(ctx); err != nil {
			logger.Get().Errorw("Scheduled reminder run failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
