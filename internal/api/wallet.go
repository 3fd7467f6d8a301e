package api

import (
	"net/http" // HTTP status codes
	"time"     // Deadline parsing

	"budgetmate/internal/domain"  // Domain types
	"budgetmate/internal/service" // Business services

	"github.com/gin-gonic/gin" // Gin web framework
)

// dateLayout is the calendar date format accepted in request bodies
const dateLayout = "2006-01-02"

// WalletRequest is the body for creating or updating a wallet
type WalletRequest struct {
	Type         domain.WalletType `json:"type" binding:"required"`       // DEFAULT, SAVINGS or DEBT
	Name         string            `json:"name" binding:"required"`       // Display name
	Balance      float64           `json:"balance"`                       // Opening balance, ignored on update
	TargetAmount float64           `json:"target_amount" binding:"gte=0"` // Savings goal
	InterestRate float64           `json:"interest_rate" binding:"gte=0"` // Debt interest rate
	Deadline     string            `json:"deadline"`                      // Goal date, YYYY-MM-DD
}

// input converts the request into service input, parsing the deadline
func (r WalletRequest) input() (service.WalletInput, bool) {
	in := service.WalletInput{
		Type:         r.Type,
		Name:         r.Name,
		Balance:      r.Balance,
		TargetAmount: r.TargetAmount,
		InterestRate: r.InterestRate,
	}
	if r.Deadline != "" {
		d, err := time.Parse(dateLayout, r.Deadline)
		if err != nil {
			return in, false
		}
		in.Deadline = &d
	}
	return in, true
}

// CreateWalletHandler opens a wallet for the authenticated user
func CreateWalletHandler(wallets WalletManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req WalletRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		in, ok := req.input()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Deadline must be YYYY-MM-DD"})
			return
		}
		wallet, err := wallets.Create(c.Request.Context(), userID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, wallet)
	}
}

// ListWalletsHandler returns the user's wallets, cached in Redis
func ListWalletsHandler(wallets WalletManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		list, cached, err := wallets.List(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"wallets": list,   // User wallets
			"cached":  cached, // Indicate whether response is from cache
		})
	}
}

// GetWalletHandler returns one wallet owned by the user
func GetWalletHandler(wallets WalletManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		wallet, err := wallets.Get(c.Request.Context(), userID, walletID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wallet)
	}
}

// UpdateWalletHandler edits a wallet's descriptive fields
func UpdateWalletHandler(wallets WalletManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req WalletRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		in, ok := req.input()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Deadline must be YYYY-MM-DD"})
			return
		}
		wallet, err := wallets.Update(c.Request.Context(), userID, walletID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wallet)
	}
}

// DeleteWalletHandler removes a wallet and its transactions
func DeleteWalletHandler(wallets WalletManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := wallets.Delete(c.Request.Context(), userID, walletID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wallet deleted"})
	}
}

// WalletSummaryHandler returns income and expense totals for a wallet
func WalletSummaryHandler(wallets WalletManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		summary, err := wallets.Summary(c.Request.Context(), userID, walletID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
