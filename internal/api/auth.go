package api

import (
	"net/http" // HTTP status codes

	"budgetmate/internal/service" // Business services

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the body of a registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"` // Login email
	Password string `json:"password" binding:"required"`    // Plain password, length checked by the service
	FullName string `json:"full_name"`                      // Display name
}

// LoginRequest is the body of a login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Login email
	Password string `json:"password" binding:"required"` // Plain password
}

// RegisterHandler creates a new account with the USER role
func RegisterHandler(auth AuthManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler authenticates a user, counts the day's check-in and returns a JWT token
func LoginHandler(auth AuthManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		result, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// MeHandler returns the authenticated user's profile
func MeHandler(auth AuthManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		user, err := auth.Me(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// CheckInHandler counts today's check-in for the streak
func CheckInHandler(streaks StreakManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		result, err := streaks.CheckIn(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
