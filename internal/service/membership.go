package service

import (
	"context"
	"fmt"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// PlanInput carries the admin-editable plan fields
type PlanInput struct {
	Name        string
	Description string
	Price       float64
	Duration    float64 // Months, fractions allowed
	Features    []string
}

func (in PlanInput) apply(p *domain.MembershipPlan) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Duration = in.Duration
	p.Features = in.Features
}

// MembershipService manages the membership plan catalog
type MembershipService struct {
	store *repository.Store
	cache cache
}

// NewMembershipService creates a MembershipService; rdb may be nil
func NewMembershipService(store *repository.Store, rdb *redis.Client, ttl time.Duration) *MembershipService {
	return &MembershipService{store: store, cache: newCache(rdb, ttl)}
}

// List returns every plan and whether it came from the cache
func (s *MembershipService) List(ctx context.Context) ([]domain.MembershipPlan, bool, error) {
	var plans []domain.MembershipPlan
	if s.cache.get(ctx, membershipsKey, &plans) {
		return plans, true, nil
	}
	plans, err := repository.All[domain.MembershipPlan](ctx, s.store)
	if err != nil {
		return nil, false, err
	}
	s.cache.set(ctx, membershipsKey, plans)
	return plans, false, nil
}

// Get returns one plan
func (s *MembershipService) Get(ctx context.Context, id uint) (*domain.MembershipPlan, error) {
	return repository.FindByID[domain.MembershipPlan](ctx, s.store, id)
}

// Create adds a plan
func (s *MembershipService) Create(ctx context.Context, in PlanInput) (*domain.MembershipPlan, error) {
	var plan domain.MembershipPlan
	in.apply(&plan)
	if err := repository.Create(ctx, s.store, &plan); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"plan_id": plan.ID, "name": plan.Name, "price": plan.Price}).Info("Membership plan created")
	s.cache.del(ctx, membershipsKey)
	return &plan, nil
}

// Update replaces a plan's fields; existing subscriptions keep their dates
func (s *MembershipService) Update(ctx context.Context, id uint, in PlanInput) (*domain.MembershipPlan, error) {
	plan, err := repository.FindByID[domain.MembershipPlan](ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	in.apply(plan)
	if err := repository.Update(ctx, s.store, plan, plan.ID); err != nil {
		return nil, err
	}
	logrus.WithField("plan_id", id).Info("Membership plan updated")
	s.cache.del(ctx, membershipsKey)
	return plan, nil
}

// Delete removes a plan nobody ever subscribed to
func (s *MembershipService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		n, err := tx.CountSubscriptionsByPlan(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: plan %d has %d subscriptions", domain.ErrInUse, id, n)
		}
		return repository.DeleteByID[domain.MembershipPlan](ctx, tx, id)
	})
	if err != nil {
		return err
	}
	logrus.WithField("plan_id", id).Info("Membership plan deleted")
	s.cache.del(ctx, membershipsKey)
	return nil
}
