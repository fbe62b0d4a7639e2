package middleware

import (
	"net/http"

	"asumo/models"

	"github.com/gin-gonic/gin"
)

// AdminOnlyMiddleware guards board/admin routes. It must run after
// JWTAuthMiddleware, which places the role claim on the context.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("role")
		if !ok || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
