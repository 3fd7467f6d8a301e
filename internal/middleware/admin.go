package middleware

import (
	"context"  // Request context
	"net/http" // HTTP status codes

	"budgetmate/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserLookup loads a user with its role
type UserLookup interface {
	Me(ctx context.Context, userID uint) (*domain.User, error)
}

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(UserIDKey) // Get userID from context
		userID, ok := v.(uint)
		if !exists || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Token role claims can be stale, so the role is read fresh
		user, err := users.Me(c.Request.Context(), userID)
		if err != nil || !user.IsAdmin() || user.Status != domain.UserStatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
