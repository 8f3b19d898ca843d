package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaffOnlyMiddleware gates an endpoint to accounts with the staff role.
// Must run after JWTAuthMiddleware, which sets the role on the context.
func StaffOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "staff" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}
