package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finanzas/internal/errors"
	"finanzas/internal/logger"
	"finanzas/internal/state"
	"finanzas/internal/uuid"
)

// StateProvider hands out the per-user state container.
type StateProvider interface {
	Get(ctx context.Context, userID string) (*state.Container, error)
	Evict(userID string)
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString("userID")
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// getClientID returns the X-Client-ID stored by the ClientID middleware.
func getClientID(c *gin.Context) (string, error) {
	clientID := c.GetString("clientID")
	if clientID == "" {
		return "", apperrors.ErrMissingClientID
	}
	return clientID, nil
}

// parsePathID reads a record ID path parameter. Temporary IDs handed out
// for unsaved records are accepted alongside stored UUIDs.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) && !uuid.IsTemporary(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// loadState returns the authenticated user's ID and state container.
func loadState(c *gin.Context, states StateProvider) (string, *state.Container, bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return "", nil, false
	}
	st, err := states.Get(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return "", nil, false
	}
	return userID, st, true
}

// settle waits up to timeout for p to be confirmed. A confirmed change is
// returned with status; a change still being saved is returned as applied
// locally with 202 Accepted. A reverted change returns its error.
func settle[T any](c *gin.Context, p *state.Pending[T], timeout time.Duration, status int) (T, int, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.Done():
		v, err := p.Wait(context.Background())
		if err != nil {
			return v, 0, err
		}
		return v, status, nil
	case <-timer.C:
	case <-c.Request.Context().Done():
	}
	return p.Optimistic(), http.StatusAccepted, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
				"request_id", c.GetString("requestID"),
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", c.GetString("requestID"),
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
	Synced  bool   `json:"synced"`
}
