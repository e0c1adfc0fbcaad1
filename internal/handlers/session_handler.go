package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finanzas/internal/errors"
	"finanzas/internal/session"
)

// SessionHandler serves the per-client theme and remembered user.
type SessionHandler struct {
	sessions *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// UpdateThemeRequest represents the request payload for changing the theme.
type UpdateThemeRequest struct {
	Theme string `json:"theme" binding:"required,theme"`
}

// GetSession restores the client's theme and remembered user
// @Summary     Restore session
// @Description Return the stored theme (default dark) and the user remembered on this client, if any
// @Tags        session
// @Produce     json
// @Param       X-Client-ID header string true "Client identifier"
// @Success     200 {object} session.State "Session state"
// @Failure     400 {object} ErrorResponse "Missing client ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	st, err := h.sessions.Restore(c.Request.Context(), clientID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdateTheme stores the client's theme
// @Summary     Set theme
// @Description Store the light or dark theme for this client
// @Tags        session
// @Accept      json
// @Produce     json
// @Param       X-Client-ID header string true "Client identifier"
// @Param       request body UpdateThemeRequest true "Theme"
// @Success     200 {object} map[string]string "Theme stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /session/theme [put]
func (h *SessionHandler) UpdateTheme(c *gin.Context) {
	clientID, err := getClientID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.sessions.SetTheme(c.Request.Context(), clientID, req.Theme); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
