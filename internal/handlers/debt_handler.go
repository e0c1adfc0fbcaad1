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

// DebtHandler handles debt-related requests.
type DebtHandler struct {
	states       StateProvider
	auditService services.AuditServicer
	syncTimeout  time.Duration
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(states StateProvider, auditService services.AuditServicer, syncTimeout time.Duration) *DebtHandler {
	return &DebtHandler{states: states, auditService: auditService, syncTimeout: syncTimeout}
}

// CreateDebtRequest represents the request payload for creating a debt.
// Balance defaults to the total amount.
type CreateDebtRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	TotalAmount  int64    `json:"totalAmount" binding:"required,gt=0"`
	Balance      *int64   `json:"balance" binding:"omitempty,gte=0"`
	Deadline     string   `json:"deadline" binding:"omitempty,calendar_date"`
	Category     string   `json:"category" binding:"max=100"`
	InterestRate *float64 `json:"interestRate" binding:"omitempty,gte=0,lte=1000"`
	PaymentDay   *int     `json:"paymentDay" binding:"omitempty,min=1,max=31"`
}

// PayDebtRequest represents the request payload for a debt payment.
type PayDebtRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// DebtResponse wraps a debt with its sync status.
type DebtResponse struct {
	Debt   aggregator.DebtView `json:"debt"`
	Synced bool                `json:"synced"`
}

// PaymentResponse is the debt after a payment and the expense recording it.
type PaymentResponse struct {
	Debt        aggregator.DebtView `json:"debt"`
	Transaction domain.Transaction  `json:"transaction"`
	Synced      bool                `json:"synced"`
}

// CreateDebt handles the creation of a new debt
// @Summary     Create a debt
// @Description Record a debt. Balance defaults to the total amount and the category to "Deudas".
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} DebtResponse "Debt created"
// @Success     202 {object} DebtResponse "Debt applied, still saving"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Saving failed and the change was reverted"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt := domain.Debt{
		Name:         req.Name,
		TotalAmount:  req.TotalAmount,
		Balance:      req.TotalAmount,
		Category:     req.Category,
		InterestRate: req.InterestRate,
		PaymentDay:   req.PaymentDay,
	}
	if req.Balance != nil {
		debt.Balance = *req.Balance
	}
	if req.Deadline != "" {
		deadline, err := domain.ParseDate(req.Deadline)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		debt.Deadline = deadline
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	created, status, err := settle(c, st.AddDebt(debt), h.syncTimeout, http.StatusCreated)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DEBT", "debt", created.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "total_amount": req.TotalAmount, "balance": debt.Balance})

	c.JSON(status, DebtResponse{Debt: aggregator.DescribeDebt(created, st.Today()), Synced: status != http.StatusAccepted})
}

// GetDebts returns the user's debts
// @Summary     List debts
// @Description List debts with their paid state, paid percentage and days to deadline
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]aggregator.DebtView "Debts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [get]
func (h *DebtHandler) GetDebts(c *gin.Context) {
	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"debts": aggregator.DescribeDebts(st.Debts(), st.Today())})
}

// DeleteDebt handles the deletion of a debt
// @Summary     Delete debt
// @Description Delete a debt by ID. Payments already recorded stay as expenses.
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} MessageResponse "Debt deleted"
// @Success     202 {object} MessageResponse "Debt removed, still saving"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     502 {object} ErrorResponse "Deleting failed and the debt was restored"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	_, status, err := settle(c, st.DeleteDebt(debtID), h.syncTimeout, http.StatusOK)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DEBT", "debt", debtID, c.ClientIP(), nil)

	c.JSON(status, MessageResponse{Message: "Debt deleted successfully", Synced: status == http.StatusOK})
}

// PayDebt records a payment against a debt
// @Summary     Pay a debt
// @Description Lower the debt's balance and record the payment as an expense dated today
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Debt ID"
// @Param       request body PayDebtRequest true "Payment amount"
// @Success     200 {object} PaymentResponse "Payment recorded"
// @Success     202 {object} PaymentResponse "Payment applied, still saving"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     502 {object} ErrorResponse "Saving failed and the payment was reverted"
// @Router      /debts/{id}/payments [post]
func (h *DebtHandler) PayDebt(c *gin.Context) {
	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PayDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	result, status, err := settle(c, st.PayDebt(debtID, req.Amount), h.syncTimeout, http.StatusOK)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PAY_DEBT", "debt", debtID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "balance": result.Debt.Balance})

	c.JSON(status, PaymentResponse{
		Debt:        aggregator.DescribeDebt(result.Debt, st.Today()),
		Transaction: result.Transaction,
		Synced:      status == http.StatusOK,
	})
}
