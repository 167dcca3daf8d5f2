package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sgca/treasury_backend/internal/core/domain"
)

// RequireRole creates a Gin middleware handler that allows the request only
// when the authenticated user holds one of the given roles. Role checks live
// entirely at this boundary; the services below assume callers are authorized.
func RequireRole(allowed ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		role, ok := GetUserRoleFromContext(c)
		if !ok {
			logger.Warn("Role missing from authenticated request")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		logger.Warn("Insufficient role for request", "role", string(role))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}
