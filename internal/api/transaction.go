package api

import (
	"net/http" // HTTP status codes
	"time"     // Transaction timestamps

	"budgetmate/internal/service" // Business services

	"github.com/gin-gonic/gin" // Gin web framework
)

// TransactionRequest is the body for recording or editing a transaction
type TransactionRequest struct {
	WalletID        uint      `json:"wallet_id" binding:"required"`   // Target wallet
	CategoryID      uint      `json:"category_id" binding:"required"` // Income or expense category
	Amount          float64   `json:"amount" binding:"required,gt=0"` // Positive amount
	Description     string    `json:"description"`                    // Free text
	TransactionTime time.Time `json:"transaction_time"`               // RFC 3339, defaults to now
}

func (r TransactionRequest) input() service.TransactionInput {
	return service.TransactionInput{
		WalletID:        r.WalletID,
		CategoryID:      r.CategoryID,
		Amount:          r.Amount,
		Description:     r.Description,
		TransactionTime: r.TransactionTime,
	}
}

// CreateTransactionHandler records income or an expense against a wallet
func CreateTransactionHandler(txs TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		t, err := txs.Create(c.Request.Context(), userID, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

// GetTransactionHandler returns one of the user's transactions
func GetTransactionHandler(txs TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		txID, ok := pathID(c, "id")
		if !ok {
			return
		}
		t, err := txs.Get(c.Request.Context(), userID, txID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// UpdateTransactionHandler edits a transaction and rebalances the wallets involved
func UpdateTransactionHandler(txs TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		txID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		t, err := txs.Update(c.Request.Context(), userID, txID, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// DeleteTransactionHandler removes a transaction and reverts its effect
func DeleteTransactionHandler(txs TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		txID, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := txs.Delete(c.Request.Context(), userID, txID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}

// GetTransactionHistoryHandler returns paginated transaction history for a wallet, with caching
func GetTransactionHistoryHandler(txs TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		walletID, ok := pathID(c, "id")
		if !ok {
			return
		}
		page, cached, err := txs.ListByWallet(c.Request.Context(), userID, walletID, pageQuery(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"transactions": page.Transactions, // Current page of transactions
			"page":         page.Page,         // Current page
			"page_size":    page.PageSize,     // Page size
			"total":        page.Total,        // Total number of transactions
			"total_pages":  page.TotalPages,   // Total pages
			"cached":       cached,            // Indicate whether response is from cache
		})
	}
}
