package service

import (
	"context"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CheckInResult reports the streak state after a check-in
type CheckInResult struct {
	StreakDays int  `json:"streak_days"` // Consecutive days including today
	Credits    int  `json:"credits"`     // Credit balance after the reward
	Counted    bool `json:"counted"`     // False when the user already checked in today
}

// StreakService tracks daily check-ins and rewards them with credits
type StreakService struct {
	store  *repository.Store
	reward int
	cache  cache
	clock  Clock
}

// NewStreakService creates a StreakService awarding reward credits per counted day; rdb may be nil
func NewStreakService(store *repository.Store, reward int, rdb *redis.Client, clock Clock) *StreakService {
	return &StreakService{store: store, reward: reward, cache: newCache(rdb, 0), clock: clock}
}

// NextStreak computes the streak after checking in at now given the previous check-in
func NextStreak(current int, last *time.Time, now time.Time) (int, bool) {
	today := domain.TruncateDay(now)
	if last == nil {
		return 1, true
	}
	lastDay := domain.TruncateDay(*last)
	switch {
	case !lastDay.Before(today):
		return current, false
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return current + 1, true
	default:
		return 1, true
	}
}

// CheckIn counts today for the user at most once
func (s *StreakService) CheckIn(ctx context.Context, userID uint) (*CheckInResult, error) {
	now := s.clock.now()
	var result CheckInResult
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := repository.FindByID[domain.User](ctx, tx, userID)
		if err != nil {
			return err
		}
		streak, counted := NextStreak(user.StreakDays, user.LastLoginDate, now)
		result = CheckInResult{StreakDays: streak, Credits: user.Credits, Counted: counted}
		if !counted {
			return nil
		}
		if err := tx.SetStreak(ctx, userID, streak, now); err != nil {
			return err
		}
		if s.reward > 0 {
			credits, err := tx.AddCredits(ctx, userID, s.reward)
			if err != nil {
				return err
			}
			result.Credits = credits
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Counted {
		s.cache.delPrefix(ctx, adminUsersPrefix) // Streak and credits changed
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"streak_days": result.StreakDays,
			"credits":     result.Credits,
		}).Info("Check-in counted")
	}
	return &result, nil
}
