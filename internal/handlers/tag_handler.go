package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"finanzas/internal/domain"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/services"
)

// TagHandler serves the per-type category vocabularies.
type TagHandler struct {
	states       StateProvider
	auditService services.AuditServicer
	syncTimeout  time.Duration
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(states StateProvider, auditService services.AuditServicer, syncTimeout time.Duration) *TagHandler {
	return &TagHandler{states: states, auditService: auditService, syncTimeout: syncTimeout}
}

// CreateTagRequest represents the request payload for adding a category tag
type CreateTagRequest struct {
	Type domain.TransactionType `json:"type" binding:"required,transaction_type"`
	Name string                 `json:"name" binding:"required,max=50"`
}

// TagsResponse lists the vocabulary for each transaction type.
type TagsResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// GetTags returns the category vocabularies
// @Summary     List category tags
// @Description Default categories followed by the user's own, per transaction type
// @Tags        tags
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} TagsResponse "Tags"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /tags [get]
func (h *TagHandler) GetTags(c *gin.Context) {
	_, st, ok := loadState(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, TagsResponse{
		Income:  st.Tags(domain.TransactionTypeIncome),
		Expense: st.Tags(domain.TransactionTypeExpense),
	})
}

// CreateTag adds a category tag
// @Summary     Add category tag
// @Description Add a category to the vocabulary of one transaction type. Existing names are left as they are.
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTagRequest true "Tag"
// @Success     200 {object} TagsResponse "Tag already existed"
// @Success     201 {object} TagsResponse "Tag added"
// @Success     202 {object} TagsResponse "Tag added, still saving"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Saving failed and the tag was removed"
// @Router      /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "name must not be blank"))
		return
	}

	userID, st, ok := loadState(c, h.states)
	if !ok {
		return
	}

	p := st.AddTag(req.Type, req.Name)
	added, status, err := settle(c, p, h.syncTimeout, http.StatusCreated)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if status == http.StatusCreated && !added {
		status = http.StatusOK
	}
	if added {
		h.auditService.Log(userID, "CREATE_TAG", "tag", req.Name, c.ClientIP(),
			map[string]interface{}{"type": req.Type})
	}

	c.JSON(status, TagsResponse{
		Income:  st.Tags(domain.TransactionTypeIncome),
		Expense: st.Tags(domain.TransactionTypeExpense),
	})
}
