package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finanzas/internal/aggregator"
	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/pagination"
	"finanzas/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	states       StateProvider
	auditService services.AuditServicer
	syncTimeout  time.Duration
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(states StateProvider, auditService services.AuditServicer, syncTimeout time.Duration) *TransactionHandler {
	return &TransactionHandler{states: states, auditService: auditService, syncTimeout: syncTimeout}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Date        string                 `json:"date" binding:"required,calendar_date"`
	Type        domain.TransactionType `json:"type" binding:"required,transaction_type"`
	Category    string                 `json:"category" binding:"required,max=100"`
	Amount      int64                  `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"max=500"`
}

// TransactionFilterQuery holds the optional list filters.
type TransactionFilterQuery struct {
	Type  string `form:"type" binding:"omitempty,transaction_type"`
	Query string `form:"q" binding:"max=100"`
}

// TransactionResponse wraps a transaction with its sync status.
type TransactionResponse struct {
	Transaction domain.Transaction `json:"transaction"`
	Synced      bool               `json:"synced"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense. Answers 202 with the locally applied record if saving takes longer than the sync timeout.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Success     202 {object} TransactionResponse "Transaction applied, still saving"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Saving failed and the change was reverted"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	p := st.AddTransaction(domain.Transaction{
		Date:        date,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	})
	tx, status, err := settle(c, p, h.syncTimeout, http.StatusCreated)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", tx.ID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount, "category": req.Category})

	c.JSON(status, TransactionResponse{Transaction: tx, Synced: status != http.StatusAccepted})
}

// GetTransactions returns the user's transactions, newest first
// @Summary     List transactions
// @Description List transactions with optional type filter and text search over description and category
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "income or expense"
// @Param       q         query string false "Search term (at least two characters)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[domain.Transaction] "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var filter TransactionFilterQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	txs := st.Transactions()
	if filter.Type != "" {
		txs = aggregator.FilterByType(txs, domain.TransactionType(filter.Type))
	}
	if filter.Query != "" {
		txs = aggregator.Search(txs, filter.Query, 0)
	}

	c.JSON(http.StatusOK, pagination.Slice(txs, page))
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete transaction
// @Description Delete a transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Success     202 {object} MessageResponse "Transaction removed, still saving"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     502 {object} ErrorResponse "Deleting failed and the transaction was restored"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	_, status, err := settle(c, st.DeleteTransaction(transactionID), h.syncTimeout, http.StatusOK)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(status, MessageResponse{Message: "Transaction deleted successfully", Synced: status == http.StatusOK})
}
