package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows the request through when the authenticated user holds
// one of the given roles. Runs after AuthMiddleware.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

func AuthorOrAdmin() gin.HandlerFunc {
	return RequireRoles("author", "admin")
}

func EditorOrAdmin() gin.HandlerFunc {
	return RequireRoles("editor", "admin")
}

func CoordinatorOrAdmin() gin.HandlerFunc {
	return RequireRoles("coordinator", "admin")
}

func EditorOrCoordinator() gin.HandlerFunc {
	return RequireRoles("editor", "coordinator", "admin")
}
