package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel error matching
	"time"    // Timestamps and periods

	"budgetmate/internal/domain"     // Domain models
	"budgetmate/internal/repository" // Data access

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/datatypes"          // Date columns
)

// SubscriptionService drives the subscription lifecycle
type SubscriptionService struct {
	store *repository.Store
	clock Clock
}

// NewSubscriptionService creates a SubscriptionService
func NewSubscriptionService(store *repository.Store, clock Clock) *SubscriptionService {
	return &SubscriptionService{store: store, clock: clock}
}

// setPeriod starts the subscription today and ends it after the plan's duration
func setPeriod(sub *domain.Subscription, plan *domain.MembershipPlan, now time.Time) {
	start := domain.TruncateDay(now)
	sub.StartDate = datatypes.Date(start)
	sub.EndDate = datatypes.Date(plan.EndDate(start))
}

// Subscribe opens a subscription to planID; free plans are active at once, paid ones wait for payment
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, planID uint, method domain.PaymentMethod) (*domain.Subscription, error) {
	now := s.clock.now()
	var sub domain.Subscription
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		open, err := tx.FindOpenSubscription(ctx, userID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// No open subscription
		case err != nil:
			return err
		case open.Status == domain.SubscriptionStatusActive && open.EndedBefore(now):
			// Lapsed period the worker has not reached yet
			if err := s.expire(ctx, tx, open); err != nil {
				return err
			}
		default:
			return domain.ErrActiveSubscription
		}
		plan, err := repository.FindByID[domain.MembershipPlan](ctx, tx, planID)
		if err != nil {
			return err
		}
		sub = domain.Subscription{
			Status:           domain.SubscriptionStatusPending,
			PaymentMethod:    method,
			PaymentStatus:    domain.PaymentStatusPending,
			MembershipPlanID: plan.ID,
			UserID:           userID,
		}
		if plan.IsFree() { // No payment step for free plans
			sub.Status = domain.SubscriptionStatusActive
			sub.PaymentStatus = domain.PaymentStatusCompleted
		}
		setPeriod(&sub, plan, now)
		if err := repository.Create(ctx, tx, &sub); err != nil {
			return err
		}
		sub.MembershipPlan = plan // Returned with the plan loaded
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "plan_id": planID, "error": err.Error()}).Error("Subscribe failed")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":         userID,
		"subscription_id": sub.ID,
		"plan_id":         planID,
		"status":          sub.Status.String(),
	}).Info("Subscription created")
	return &sub, nil
}

// ConfirmPayment settles a pending subscription; a failed payment cancels it
func (s *SubscriptionService) ConfirmPayment(ctx context.Context, subID uint, success bool) (*domain.Subscription, error) {
	now := s.clock.now()
	var sub *domain.Subscription
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if sub, err = repository.FindByID[domain.Subscription](ctx, tx, subID, "MembershipPlan"); err != nil {
			return err
		}
		if sub.Status != domain.SubscriptionStatusPending {
			return domain.ErrInvalidTransition
		}
		if success {
			if err := sub.Transition(domain.SubscriptionStatusActive); err != nil {
				return err
			}
			sub.PaymentStatus = domain.PaymentStatusCompleted
			setPeriod(sub, sub.MembershipPlan, now) // Period starts on payment
		} else {
			if err := sub.Transition(domain.SubscriptionStatusCancelled); err != nil {
				return err
			}
			sub.PaymentStatus = domain.PaymentStatusFailed
		}
		return repository.Update(ctx, tx, sub, sub.ID)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"subscription_id": subID,
		"status":          sub.Status.String(),
		"payment_status":  sub.PaymentStatus.String(),
	}).Info("Payment confirmed")
	return sub, nil
}

// Cancel ends one of the user's pending or active subscriptions
func (s *SubscriptionService) Cancel(ctx context.Context, userID, subID uint) (*domain.Subscription, error) {
	var sub *domain.Subscription
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if sub, err = repository.FindByID[domain.Subscription](ctx, tx, subID, "MembershipPlan"); err != nil {
			return err
		}
		if sub.UserID != userID { // Owner only
			return domain.ErrForbidden
		}
		if err := sub.Transition(domain.SubscriptionStatusCancelled); err != nil {
			return err
		}
		return repository.Update(ctx, tx, sub, sub.ID)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "subscription_id": subID}).Info("Subscription cancelled")
	return sub, nil
}

// Current returns the user's active subscription, expiring it first if its period is over
func (s *SubscriptionService) Current(ctx context.Context, userID uint) (*domain.Subscription, error) {
	now := s.clock.now()
	sub, err := s.store.FindActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sub.EndedBefore(now) {
		return sub, nil // Still within its period
	}
	if err := s.expire(ctx, s.store, sub); err != nil {
		return nil, err
	}
	return nil, domain.ErrNotFound
}

// History returns every subscription of the user, newest first
func (s *SubscriptionService) History(ctx context.Context, userID uint) ([]domain.Subscription, error) {
	return s.store.ListSubscriptionsByUser(ctx, userID)
}

func (s *SubscriptionService) expire(ctx context.Context, store *repository.Store, sub *domain.Subscription) error {
	if err := sub.Transition(domain.SubscriptionStatusExpired); err != nil {
		return err
	}
	sub.MembershipPlan = nil // Skip association saves
	if err := repository.Update(ctx, store, sub, sub.ID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": sub.UserID, "subscription_id": sub.ID}).Info("Subscription expired")
	return nil
}

// ExpireDue marks every active subscription whose period ended before today as expired
func (s *SubscriptionService) ExpireDue(ctx context.Context) (int, error) {
	now := s.clock.now()
	expired := 0
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		subs, err := tx.ListSubscriptionsByStatus(ctx, domain.SubscriptionStatusActive)
		if err != nil {
			return err
		}
		for i := range subs {
			if !subs[i].EndedBefore(now) {
				continue
			}
			if err := s.expire(ctx, tx, &subs[i]); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	return expired, err
}
