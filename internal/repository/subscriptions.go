package repository

import (
	"context"

	"budgetmate/internal/domain"
)

var openStatuses = []domain.SubscriptionStatus{domain.SubscriptionStatusPending, domain.SubscriptionStatusActive}

// FindOpenSubscription returns the user's PENDING or ACTIVE subscription, if any
func (s *Store) FindOpenSubscription(ctx context.Context, userID uint) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.conn(ctx).Preload("MembershipPlan").
		Where("user_id = ? AND status IN ?", userID, openStatuses).
		Order("id desc").First(&sub).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

// FindActiveSubscription returns the user's ACTIVE subscription with its plan
func (s *Store) FindActiveSubscription(ctx context.Context, userID uint) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.conn(ctx).Preload("MembershipPlan").
		Where("user_id = ? AND status = ?", userID, domain.SubscriptionStatusActive).
		Order("id desc").First(&sub).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

// ListSubscriptionsByUser returns a user's subscription history, newest first
func (s *Store) ListSubscriptionsByUser(ctx context.Context, userID uint) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := s.conn(ctx).Preload("MembershipPlan").Where("user_id = ?", userID).Order("id desc").Find(&subs).Error
	return subs, err
}

// ListSubscriptionsByStatus returns every subscription in status
func (s *Store) ListSubscriptionsByStatus(ctx context.Context, status domain.SubscriptionStatus) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := s.conn(ctx).Where("status = ?", status).Order("id").Find(&subs).Error
	return subs, err
}

// CountSubscriptionsByPlan reports how many subscriptions reference a plan
func (s *Store) CountSubscriptionsByPlan(ctx context.Context, planID uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&domain.Subscription{}).Where("membership_plan_id = ?", planID).Count(&count).Error
	return count, err
}
