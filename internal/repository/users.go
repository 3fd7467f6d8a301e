package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgetmate/internal/domain"

	"gorm.io/gorm"
)

// FindUserByEmail loads a user and its role by email, case-insensitively
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.conn(ctx).Preload("Role").Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ListUserIDsByRole returns the ids of every user holding roleID
func (s *Store) ListUserIDsByRole(ctx context.Context, roleID uint) ([]uint, error) {
	var ids []uint
	if err := s.conn(ctx).Model(&domain.User{}).Where("role_id = ?", roleID).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// AddCredits changes a user's credit balance by delta and returns the new balance
func (s *Store) AddCredits(ctx context.Context, userID uint, delta int) (int, error) {
	res := s.conn(ctx).Model(&domain.User{}).Where("id = ?", userID).
		Update("credits", gorm.Expr("credits + ?", delta)) // Atomic in-place update
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrNotFound
	}
	var credits int // Read back the new balance
	if err := s.conn(ctx).Model(&domain.User{}).Where("id = ?", userID).Pluck("credits", &credits).Error; err != nil {
		return 0, err
	}
	return credits, nil
}

// ClearPet unlinks every user from petID
func (s *Store) ClearPet(ctx context.Context, petID uint) error {
	return s.conn(ctx).Model(&domain.User{}).Where("pet_id = ?", petID).Update("pet_id", nil).Error
}

// LoadUserGraph assembles a user with role, pet, wallets, subscriptions and quiz logs
func (s *Store) LoadUserGraph(ctx context.Context, userID uint) (*domain.UserGraph, error) {
	user, err := FindByID[domain.User](ctx, s, userID, "Role", "Pet")
	if err != nil {
		return nil, err
	}
	graph := &domain.UserGraph{User: *user}
	if err := s.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&graph.Wallets).Error; err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Preload("MembershipPlan").Where("user_id = ?", userID).Order("id").Find(&graph.Subscriptions).Error; err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Where("user_id = ?", userID).Order("id").Find(&graph.QuizLogs).Error; err != nil {
		return nil, err
	}
	return graph, nil
}

// DeleteUserCascade removes a user together with everything it owns
func (s *Store) DeleteUserCascade(ctx context.Context, userID uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		ok, err := Exists[domain.User](ctx, tx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return tx.deleteUsers(ctx, []uint{userID})
	})
}

// deleteUsers removes users and their dependents; callers must hold a transaction
func (s *Store) deleteUsers(ctx context.Context, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	db := s.conn(ctx)
	if err := db.Where("user_id IN ?", userIDs).Delete(&domain.QuizLog{}).Error; err != nil {
		return fmt.Errorf("failed to delete quiz logs: %w", err)
	}
	if err := db.Where("user_id IN ?", userIDs).Delete(&domain.Subscription{}).Error; err != nil {
		return fmt.Errorf("failed to delete subscriptions: %w", err)
	}
	var walletIDs []uint // Wallets go with their transactions
	if err := db.Model(&domain.Wallet{}).Where("user_id IN ?", userIDs).Pluck("id", &walletIDs).Error; err != nil {
		return err
	}
	if err := s.deleteWallets(ctx, walletIDs); err != nil {
		return err
	}
	if err := db.Where("id IN ?", userIDs).Delete(&domain.User{}).Error; err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}

// SetStreak records a check-in: the new streak length and its time
func (s *Store) SetStreak(ctx context.Context, userID uint, streakDays int, at time.Time) error {
	res := s.conn(ctx).Model(&domain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"streak_days": streakDays, "last_login_date": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
