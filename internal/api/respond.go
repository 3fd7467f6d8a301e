package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"budgetmate/internal/domain"     // Domain errors
	"budgetmate/internal/middleware" // Context keys
	"budgetmate/internal/repository" // Pagination

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// errorStatus maps domain errors to HTTP status codes
var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrParentNotFound, http.StatusUnprocessableEntity},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrInUse, http.StatusConflict},
	{domain.ErrActiveSubscription, http.StatusConflict},
	{domain.ErrAlreadyAnswered, http.StatusConflict},
	{domain.ErrInvalidTransition, http.StatusConflict},
	{domain.ErrDailyLimitReached, http.StatusTooManyRequests},
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrInvalidEnum, http.StatusBadRequest},
	{domain.ErrInvalidDateRange, http.StatusBadRequest},
	{domain.ErrAnswerMismatch, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUserInactive, http.StatusForbidden},
}

// statusFor returns the HTTP status for err, 500 when it is not a domain error
func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body with its mapped status
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		// Hide internal details from the client
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route pattern
			"error": err.Error(),  // Error message
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentUserID returns the authenticated user id set by the JWT middleware
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.UserIDKey) // Get userID from context
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// pageQuery reads page and page_size query parameters
func pageQuery(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))      // Invalid values fall back to defaults
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "0")) // Zero selects the default size
	return repository.NewPage(page, size)
}

// bindJSON binds the request body or writes a 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}
