package api

import (
	"net/http" // HTTP status codes

	"budgetmate/internal/domain"  // Domain types
	"budgetmate/internal/service" // Business services

	"github.com/gin-gonic/gin" // Gin web framework
)

// PlanRequest is the body for creating or updating a membership plan
type PlanRequest struct {
	Name        string   `json:"name" binding:"required"`     // Plan name
	Description string   `json:"description"`                 // Plan description
	Price       float64  `json:"price" binding:"gte=0"`       // Zero for free plans
	Duration    float64  `json:"duration" binding:"required"` // Months
	Features    []string `json:"features"`                    // Feature labels
}

func (r PlanRequest) input() service.PlanInput {
	return service.PlanInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		Features:    r.Features,
	}
}

// SubscribeRequest is the body of a subscription
type SubscribeRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method" binding:"required"` // CREDIT_CARD, BANK_TRANSFER or E_WALLET
}

// ConfirmPaymentRequest is the body of a payment confirmation
type ConfirmPaymentRequest struct {
	Success *bool `json:"success" binding:"required"` // Whether the payment went through
}

// ListPlansHandler returns every membership plan, cached in Redis
func ListPlansHandler(plans MembershipManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, cached, err := plans.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"plans":  list,   // Membership plans
			"cached": cached, // Indicate whether response is from cache
		})
	}
}

// GetPlanHandler returns one membership plan
func GetPlanHandler(plans MembershipManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		plan, err := plans.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}

// CreatePlanHandler adds a membership plan
func CreatePlanHandler(plans MembershipManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlanRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		plan, err := plans.Create(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, plan)
	}
}

// UpdatePlanHandler replaces a membership plan's fields
func UpdatePlanHandler(plans MembershipManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req PlanRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		plan, err := plans.Update(c.Request.Context(), id, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}

// DeletePlanHandler removes a plan without subscriptions
func DeletePlanHandler(plans MembershipManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := plans.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Membership plan deleted"})
	}
}

// SubscribeHandler subscribes the user to a plan
func SubscribeHandler(subs SubscriptionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		planID, ok := pathID(c, "planId")
		if !ok {
			return
		}
		var req SubscribeRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		sub, err := subs.Subscribe(c.Request.Context(), userID, planID, req.PaymentMethod)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sub)
	}
}

// CurrentSubscriptionHandler returns the user's active subscription
func CurrentSubscriptionHandler(subs SubscriptionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		sub, err := subs.Current(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

// SubscriptionHistoryHandler returns every subscription of the user
func SubscriptionHistoryHandler(subs SubscriptionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		list, err := subs.History(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CancelSubscriptionHandler cancels one of the user's subscriptions
func CancelSubscriptionHandler(subs SubscriptionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		subID, ok := pathID(c, "id")
		if !ok {
			return
		}
		sub, err := subs.Cancel(c.Request.Context(), userID, subID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

// ConfirmPaymentHandler settles a pending subscription
func ConfirmPaymentHandler(subs SubscriptionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		subID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req ConfirmPaymentRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		sub, err := subs.ConfirmPayment(c.Request.Context(), subID, *req.Success)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}
