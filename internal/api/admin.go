package api

import (
	"net/http" // HTTP status codes

	"budgetmate/internal/domain" // Domain types

	"github.com/gin-gonic/gin" // Gin web framework
)

// RoleRequest is the body for creating a role
type RoleRequest struct {
	Name string `json:"name" binding:"required"` // Unique role name
}

// UserStatusRequest is the body for changing a user's status
type UserStatusRequest struct {
	Status domain.UserStatus `json:"status" binding:"required"` // ACTIVE, INACTIVE or BANNED
}

// ListRolesHandler returns every role
func ListRolesHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, err := admin.ListRoles(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, roles)
	}
}

// CreateRoleHandler adds a role
func CreateRoleHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RoleRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		role, err := admin.CreateRole(c.Request.Context(), req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, role)
	}
}

// DeleteRoleHandler removes a role and every user holding it
func DeleteRoleHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		removed, err := admin.DeleteRole(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Role deleted", "users_removed": removed})
	}
}

// RemoveUserFromRoleHandler detaches a user from a role, deleting the user
func RemoveUserFromRoleHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, ok := pathID(c, "id")
		if !ok {
			return
		}
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		if err := admin.RemoveUserFromRole(c.Request.Context(), roleID, userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User removed"})
	}
}

// ListUsersHandler returns a page of users with their wallets, cached in Redis
func ListUsersHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, cached, err := admin.ListUsers(c.Request.Context(), pageQuery(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users":       page.Users,      // List of users
			"page":        page.Page,       // Current page
			"page_size":   page.PageSize,   // Page size
			"total":       page.Total,      // Total number of users
			"total_pages": page.TotalPages, // Total pages
			"cached":      cached,          // Indicate whether response is from cache
		})
	}
}

// ListAllTransactionsHandler returns a page of all transactions, cached in Redis
func ListAllTransactionsHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, cached, err := admin.ListTransactions(c.Request.Context(), pageQuery(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"transactions": page.Transactions, // List of transactions
			"page":         page.Page,         // Current page
			"page_size":    page.PageSize,     // Page size
			"total":        page.Total,        // Total number of transactions
			"total_pages":  page.TotalPages,   // Total pages
			"cached":       cached,            // Indicate whether response is from cache
		})
	}
}

// GetUserHandler returns a user with its wallets, subscriptions and quiz logs
func GetUserHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		graph, err := admin.GetUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, graph)
	}
}

// UpdateUserStatusHandler activates, deactivates or bans a user
func UpdateUserStatusHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req UserStatusRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := admin.UpdateUserStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler removes a user and everything it owns
func DeleteUserHandler(admin AdminManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := admin.DeleteUser(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
