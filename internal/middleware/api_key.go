package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// DesktopAPIKey authenticates desktop app clients against the configured
// static key. Checks the X-API-Key header or api_key query parameter.
func DesktopAPIKey(expectedKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedKey == "" {
			common.ErrorResponse(c, http.StatusServiceUnavailable, "Desktop API not configured", nil)
			c.Abort()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}
		if key == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "API key required", nil)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(expectedKey)) != 1 {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid API key", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
