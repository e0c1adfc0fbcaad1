package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "finanzas/internal/errors"
)

// ClientIDHeader identifies the browser or device a request comes from.
const ClientIDHeader = "X-Client-ID"

const maxClientIDLength = 128

// ClientID requires the X-Client-ID header and stores it as "clientID".
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if id == "" || len(id) > maxClientIDLength {
			abortWithError(c, apperrors.ErrMissingClientID)
			return
		}
		c.Set("clientID", id)
		c.Next()
	}
}
