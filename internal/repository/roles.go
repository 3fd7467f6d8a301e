package repository

import (
	"context"
	"fmt"

	"budgetmate/internal/domain"
)

// FindRoleByName loads a role by its unique name
func (s *Store) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	if err := s.conn(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, notFound(err)
	}
	return &role, nil
}

// DeleteRoleCascade removes a role and every user holding it, returning how many users went with it
func (s *Store) DeleteRoleCascade(ctx context.Context, roleID uint) (int, error) {
	var removed int
	err := s.Transaction(ctx, func(tx *Store) error {
		ok, err := Exists[domain.Role](ctx, tx, roleID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		userIDs, err := tx.ListUserIDsByRole(ctx, roleID)
		if err != nil {
			return err
		}
		if err := tx.deleteUsers(ctx, userIDs); err != nil {
			return err
		}
		if err := tx.conn(ctx).Delete(&domain.Role{}, roleID).Error; err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}
		removed = len(userIDs)
		return nil
	})
	return removed, err
}

// RemoveUserFromRole detaches a user from its role; a user cannot exist without one, so it is deleted
func (s *Store) RemoveUserFromRole(ctx context.Context, roleID, userID uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		var count int64
		if err := tx.conn(ctx).Model(&domain.User{}).Where("id = ? AND role_id = ?", userID, roleID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return tx.deleteUsers(ctx, []uint{userID})
	})
}
