package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"finanzas/internal/aggregator"
	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
)

// dashboardTopCategories is how many expense categories the dashboard highlights.
const dashboardTopCategories = 5

// InsightsHandler serves the read-only views derived from a user's ledger.
type InsightsHandler struct {
	states         StateProvider
	reminderWindow int
}

// NewInsightsHandler creates a new InsightsHandler. reminderWindow is the
// default look-ahead, in days, for upcoming debt payments.
func NewInsightsHandler(states StateProvider, reminderWindow int) *InsightsHandler {
	return &InsightsHandler{states: states, reminderWindow: reminderWindow}
}

// DashboardResponse is everything the overview screen shows.
type DashboardResponse struct {
	Summary           aggregator.Summary         `json:"summary"`
	IncomeVsExpense   aggregator.IncomeVsExpense `json:"incomeVsExpense"`
	ExpenseCategories []aggregator.CategoryTotal `json:"expenseCategories"`
	TopCategories     []aggregator.CategoryTotal `json:"topCategories"`
	BalanceSeries     []aggregator.BalancePoint  `json:"balanceSeries"`
	Goals             []aggregator.GoalView      `json:"goals"`
	Reminders         []aggregator.Reminder      `json:"reminders"`
}

// CalendarQuery selects a month. Both fields default to the current month.
type CalendarQuery struct {
	Year  int `form:"year" binding:"omitempty,min=1900,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// CalendarResponse is a month of day buckets.
type CalendarResponse struct {
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	DaysInMonth  int                    `json:"daysInMonth"`
	FirstWeekday int                    `json:"firstWeekday"`
	Days         []aggregator.DayBucket `json:"days"`
}

// ReportQuery selects the reporting window.
type ReportQuery struct {
	Timeframe string `form:"timeframe" binding:"omitempty,timeframe"`
}

// RemindersQuery sets the look-ahead window.
type RemindersQuery struct {
	Days *int `form:"days" binding:"omitempty,min=0,max=31"`
}

// GetDashboard returns the overview figures
// @Summary     Dashboard
// @Description Totals, savings rate, upcoming payments, category breakdown, running balance, goals and due reminders
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard [get]
func (h *InsightsHandler) GetDashboard(c *gin.Context) {
	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	today := st.Today()
	txs := st.Transactions()
	debts := st.Debts()
	c.JSON(http.StatusOK, DashboardResponse{
		Summary:           aggregator.ComputeSummary(txs, debts, today),
		IncomeVsExpense:   aggregator.CompareIncomeExpense(txs),
		ExpenseCategories: aggregator.CategoryTotals(txs, domain.TransactionTypeExpense),
		TopCategories:     aggregator.TopCategories(txs, domain.TransactionTypeExpense, dashboardTopCategories),
		BalanceSeries:     aggregator.BalanceSeries(txs),
		Goals:             aggregator.DescribeGoals(st.Goals(), today),
		Reminders:         aggregator.DueReminders(debts, today, h.reminderWindow),
	})
}

// GetCalendar returns one month of activity by day
// @Summary     Calendar
// @Description Transactions and debt payment days grouped by day of the month
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default current)"
// @Param       month query int false "Month 1-12 (default current)"
// @Success     200 {object} CalendarResponse "Calendar"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /calendar [get]
func (h *InsightsHandler) GetCalendar(c *gin.Context) {
	var q CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	today := st.Today()
	year, month := today.Year(), today.Month()
	if q.Year != 0 {
		year = q.Year
	}
	if q.Month != 0 {
		month = time.Month(q.Month)
	}

	buckets := aggregator.CalendarBuckets(st.Transactions(), st.Debts(), year, month)
	days := make([]aggregator.DayBucket, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, *b)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	c.JSON(http.StatusOK, CalendarResponse{
		Year:         year,
		Month:        int(month),
		DaysInMonth:  aggregator.DaysInMonth(year, month),
		FirstWeekday: int(domain.NewDate(year, month, 1).Weekday()),
		Days:         days,
	})
}

// GetReport returns the report for a trailing window
// @Summary     Period report
// @Description Income, expense, balance and top expense categories over the last 1, 3, 6 or 12 months
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       timeframe query string false "1M, 3M, 6M or 1Y (default 1M)"
// @Success     200 {object} aggregator.PeriodReport "Report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports [get]
func (h *InsightsHandler) GetReport(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	tf := aggregator.Timeframe1M
	if q.Timeframe != "" {
		tf = aggregator.Timeframe(q.Timeframe)
	}

	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, aggregator.ComputePeriodReport(st.Transactions(), tf, st.Today()))
}

// GetReminders lists debt payments falling due soon
// @Summary     Upcoming payments
// @Description Unpaid debts whose monthly payment day falls within the next days
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Look-ahead in days (0-31)"
// @Success     200 {object} map[string][]aggregator.Reminder "Reminders"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reminders [get]
func (h *InsightsHandler) GetReminders(c *gin.Context) {
	var q RemindersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	window := h.reminderWindow
	if q.Days != nil {
		window = *q.Days
	}

	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": aggregator.DueReminders(st.Debts(), st.Today(), window)})
}
