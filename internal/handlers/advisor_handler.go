package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"finanzas/internal/advisor"
	"finanzas/internal/aggregator"
	apperrors "finanzas/internal/errors"
)

// Advisor produces model-backed advice from aggregates.
type Advisor interface {
	SnapshotAdvice(ctx context.Context, summary aggregator.Summary, userName string) (*advisor.SnapshotAdvice, error)
	PeriodAdvice(ctx context.Context, report aggregator.PeriodReport) (*advisor.PeriodAdvice, error)
}

// AdvisorHandler serves the advisory endpoints.
type AdvisorHandler struct {
	states  StateProvider
	advisor Advisor
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(states StateProvider, adv Advisor) *AdvisorHandler {
	return &AdvisorHandler{states: states, advisor: adv}
}

// PeriodAdviceRequest selects the reporting window to advise on.
type PeriodAdviceRequest struct {
	Timeframe string `json:"timeframe" binding:"required,timeframe"`
}

// PeriodAdviceResponse pairs a report with the advice given for it.
type PeriodAdviceResponse struct {
	Report aggregator.PeriodReport `json:"report"`
	Advice *advisor.PeriodAdvice   `json:"advice"`
}

// SnapshotAdvice asks for an assessment of the whole ledger
// @Summary     Overall advice
// @Description Send the dashboard summary to the advisory model and return its analysis and recommendations
// @Tags        advisor
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} advisor.SnapshotAdvice "Advice"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Advisory service error"
// @Failure     503 {object} ErrorResponse "Advisory service not configured"
// @Router      /advisor/snapshot [post]
func (h *AdvisorHandler) SnapshotAdvice(c *gin.Context) {
	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	summary := aggregator.ComputeSummary(st.Transactions(), st.Debts(), st.Today())
	advice, err := h.advisor.SnapshotAdvice(c.Request.Context(), summary, c.GetString("username"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, advice)
}

// PeriodAdvice asks for an assessment of one reporting window
// @Summary     Period advice
// @Description Build the report for the timeframe and send it to the advisory model
// @Tags        advisor
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PeriodAdviceRequest true "Timeframe"
// @Success     200 {object} PeriodAdviceResponse "Report and advice"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Advisory service error"
// @Failure     503 {object} ErrorResponse "Advisory service not configured"
// @Router      /advisor/period [post]
func (h *AdvisorHandler) PeriodAdvice(c *gin.Context) {
	var req PeriodAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	report := aggregator.ComputePeriodReport(st.Transactions(), aggregator.Timeframe(req.Timeframe), st.Today())
	advice, err := h.advisor.PeriodAdvice(c.Request.Context(), report)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, PeriodAdviceResponse{Report: report, Advice: advice})
}
