package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finanzas/internal/aggregator"
	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	states       StateProvider
	auditService services.AuditServicer
	syncTimeout  time.Duration
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(states StateProvider, auditService services.AuditServicer, syncTimeout time.Duration) *GoalHandler {
	return &GoalHandler{states: states, auditService: auditService, syncTimeout: syncTimeout}
}

// CreateGoalRequest represents the request payload for creating a savings goal
type CreateGoalRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	TargetAmount  int64  `json:"targetAmount" binding:"required,gt=0"`
	CurrentAmount int64  `json:"currentAmount" binding:"gte=0"`
	Deadline      string `json:"deadline" binding:"omitempty,calendar_date"`
	Color         string `json:"color" binding:"omitempty,hex_color"`
}

// UpdateGoalRequest sets a goal's current amount.
type UpdateGoalRequest struct {
	CurrentAmount *int64 `json:"currentAmount" binding:"required,gte=0"`
}

// ContributeRequest adds money to a goal.
type ContributeRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// GoalResponse wraps a goal with its sync status.
type GoalResponse struct {
	Goal   aggregator.GoalView `json:"goal"`
	Synced bool                `json:"synced"`
}

// ContributionResponse is a goal after a contribution.
type ContributionResponse struct {
	Goal          aggregator.GoalView `json:"goal"`
	ReachedTarget bool                `json:"reachedTarget"`
	Synced        bool                `json:"synced"`
}

func describeGoal(g domain.SavingsGoal, today domain.Date) aggregator.GoalView {
	return aggregator.DescribeGoals([]domain.SavingsGoal{g}, today)[0]
}

// CreateGoal handles the creation of a new savings goal
// @Summary     Create a savings goal
// @Description Create a savings goal. The color defaults to #0ea5e9.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} GoalResponse "Goal created"
// @Success     202 {object} GoalResponse "Goal applied, still saving"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Saving failed and the change was reverted"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal := domain.SavingsGoal{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Color:         req.Color,
	}
	if goal.Color == "" {
		goal.Color = domain.DefaultGoalColor
	}
	if req.Deadline != "" {
		deadline, err := domain.ParseDate(req.Deadline)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		goal.Deadline = deadline
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	created, status, err := settle(c, st.AddGoal(goal), h.syncTimeout, http.StatusCreated)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "goal", created.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "target_amount": req.TargetAmount})

	c.JSON(status, GoalResponse{Goal: describeGoal(created, st.Today()), Synced: status != http.StatusAccepted})
}

// GetGoals returns the user's savings goals
// @Summary     List savings goals
// @Description List goals with progress and the monthly, weekly and daily savings needed to meet each deadline
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]aggregator.GoalView "Goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": aggregator.DescribeGoals(st.Goals(), st.Today())})
}

// UpdateGoal sets a goal's current amount
// @Summary     Update savings goal
// @Description Set the amount saved so far. Other fields cannot be changed.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Current amount"
// @Success     200 {object} GoalResponse "Goal updated"
// @Success     202 {object} GoalResponse "Goal applied, still saving"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     502 {object} ErrorResponse "Saving failed and the change was reverted"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	var goal domain.SavingsGoal
	found := false
	for _, g := range st.Goals() {
		if g.ID == goalID {
			goal, found = g, true
			break
		}
	}
	if !found {
		respondWithError(c, apperrors.ErrGoalNotFound)
		return
	}
	previous := goal.CurrentAmount
	goal.CurrentAmount = *req.CurrentAmount

	updated, status, err := settle(c, st.UpdateGoal(goal), h.syncTimeout, http.StatusOK)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_GOAL", "goal", goalID, c.ClientIP(),
		map[string]interface{}{"current_amount": map[string]int64{"from": previous, "to": goal.CurrentAmount}})

	c.JSON(status, GoalResponse{Goal: describeGoal(updated, st.Today()), Synced: status == http.StatusOK})
}

// ContributeToGoal adds money to a goal
// @Summary     Contribute to savings goal
// @Description Add an amount to the goal. reachedTarget is true when this contribution meets the target.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body ContributeRequest true "Contribution"
// @Success     200 {object} ContributionResponse "Contribution recorded"
// @Success     202 {object} ContributionResponse "Contribution applied, still saving"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     502 {object} ErrorResponse "Saving failed and the change was reverted"
// @Router      /goals/{id}/contributions [post]
func (h *GoalHandler) ContributeToGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	p, reached := st.ContributeToGoal(goalID, req.Amount)
	goal, status, err := settle(c, p, h.syncTimeout, http.StatusOK)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONTRIBUTE_GOAL", "goal", goalID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "reached_target": reached})

	c.JSON(status, ContributionResponse{
		Goal:          describeGoal(goal, st.Today()),
		ReachedTarget: reached,
		Synced:        status == http.StatusOK,
	})
}

// DeleteGoal handles the deletion of a savings goal
// @Summary     Delete savings goal
// @Description Delete a goal by ID
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Success     202 {object} MessageResponse "Goal removed, still saving"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     502 {object} ErrorResponse "Deleting failed and the goal was restored"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	_, status, err := settle(c, st.DeleteGoal(goalID), h.syncTimeout, http.StatusOK)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_GOAL", "goal", goalID, c.ClientIP(), nil)

	c.JSON(status, MessageResponse{Message: "Goal deleted successfully", Synced: status == http.StatusOK})
}
