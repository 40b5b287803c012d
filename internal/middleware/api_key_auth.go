package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader is read by APIKeyAuth.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth authenticates integration clients (quote importers, accounting
// sync jobs) with static keys mapped to a service user id. Requests without
// a known key fall through to the JWT check.
func APIKeyAuth(keys map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || len(keys) == 0 {
			c.Next()
			return
		}

		for known, userID := range keys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(known)) == 1 {
				authenticate(c, GetLoggerFromCtx(c.Request.Context()), userID, AuthMethodAPIKey)
				break
			}
		}
		c.Next()
	}
}
