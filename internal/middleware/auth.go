package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lokiverse2468/Ailoitte/internal/auth"
	"github.com/lokiverse2468/Ailoitte/internal/models"
	"github.com/lokiverse2468/Ailoitte/internal/store"
)

// Context keys set by Authenticate and read by handlers and RequireAdmin.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// Authenticate validates the Bearer token and loads the account behind it,
// placing userID and userRole in the request context. The role comes from
// the database, not the token, so role changes take effect immediately.
func Authenticate(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		userID, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := s.UserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUserRole, user.Role)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleRaw, exists := c.Get(CtxUserRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			c.Abort()
			return
		}

		if role, ok := roleRaw.(models.Role); !ok || !role.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied: admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
