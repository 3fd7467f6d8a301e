package service

import (
	"context" // Request-scoped cancellation
	"time"    // Timestamps and periods

	"budgetmate/internal/domain"     // Domain models
	"budgetmate/internal/repository" // Data access

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
)

// UserWithWallets is a user row in the admin listing
type UserWithWallets struct {
	domain.User
	Wallets []domain.Wallet `json:"wallets"`
}

// UserPage is one page of the admin user listing
type UserPage struct {
	Users      []UserWithWallets `json:"users"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// AdminService manages roles and user accounts
type AdminService struct {
	store *repository.Store
	cache cache
}

// NewAdminService creates an AdminService; rdb may be nil
func NewAdminService(store *repository.Store, rdb *redis.Client, ttl time.Duration) *AdminService {
	return &AdminService{store: store, cache: newCache(rdb, ttl)}
}

func (s *AdminService) invalidateUsers(ctx context.Context, userIDs ...uint) {
	s.cache.delPrefix(ctx, adminUsersPrefix)
	s.cache.delPrefix(ctx, adminTransactionsPrefix)
	for _, id := range userIDs {
		s.cache.del(ctx, walletsKey(id)) // Per-user wallet lists
	}
}

// ListRoles returns every role
func (s *AdminService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return repository.All[domain.Role](ctx, s.store)
}

// CreateRole adds a role; names are unique
func (s *AdminService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	role := domain.Role{Name: name}
	if err := repository.Create(ctx, s.store, &role); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"role_id": role.ID, "name": role.Name}).Info("Role created")
	return &role, nil
}

// DeleteRole removes a role together with every user holding it
func (s *AdminService) DeleteRole(ctx context.Context, roleID uint) (int, error) {
	userIDs, err := s.store.ListUserIDsByRole(ctx, roleID)
	if err != nil {
		return 0, err
	}
	removed, err := s.store.DeleteRoleCascade(ctx, roleID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"role_id": roleID, "error": err.Error()}).Error("Failed to delete role")
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"role_id": roleID, "users_removed": removed}).Warn("Role deleted with its users")
	s.invalidateUsers(ctx, userIDs...)
	return removed, nil
}

// RemoveUserFromRole detaches a user from a role, which deletes the user
func (s *AdminService) RemoveUserFromRole(ctx context.Context, roleID, userID uint) error {
	if err := s.store.RemoveUserFromRole(ctx, roleID, userID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"role_id": roleID, "user_id": userID}).Warn("User removed from role and deleted")
	s.invalidateUsers(ctx, userID)
	return nil
}

// ListUsers returns one page of users with their wallets and whether it was cached
func (s *AdminService) ListUsers(ctx context.Context, page repository.Page) (*UserPage, bool, error) {
	key := adminUsersKey(page.Number, page.Size)
	var cached UserPage
	if s.cache.get(ctx, key, &cached) {
		return &cached, true, nil // Cache hit
	}
	users, total, err := repository.List[domain.User](ctx, s.store, page, "Role")
	if err != nil {
		return nil, false, err
	}
	wallets, err := s.store.ListWalletsByUsers(ctx, domain.IDs(users, func(u domain.User) uint { return u.ID }))
	if err != nil {
		return nil, false, err
	}
	byUser := domain.IndexBy(wallets, func(w domain.Wallet) uint { return w.UserID })
	result := &UserPage{
		Users:      make([]UserWithWallets, 0, len(users)),
		Page:       page.Number,
		PageSize:   page.Size,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}
	for _, u := range users {
		ws := byUser[u.ID]
		if ws == nil {
			ws = []domain.Wallet{} // Encode as [] rather than null
		}
		result.Users = append(result.Users, UserWithWallets{User: u, Wallets: ws})
	}
	s.cache.set(ctx, key, result)
	return result, false, nil
}

// ListTransactions returns one page of every user's transactions and whether it was cached
func (s *AdminService) ListTransactions(ctx context.Context, page repository.Page) (*TransactionPage, bool, error) {
	key := adminTransactionsKey(page.Number, page.Size)
	var cached TransactionPage
	if s.cache.get(ctx, key, &cached) {
		return &cached, true, nil
	}
	txs, total, err := repository.List[domain.Transaction](ctx, s.store, page, "Category")
	if err != nil {
		return nil, false, err
	}
	result := &TransactionPage{
		Transactions: txs,
		Page:         page.Number,
		PageSize:     page.Size,
		Total:        total,
		TotalPages:   page.TotalPages(total),
	}
	s.cache.set(ctx, key, result)
	return result, false, nil
}

// GetUser returns a user with everything it owns
func (s *AdminService) GetUser(ctx context.Context, userID uint) (*domain.UserGraph, error) {
	return s.store.LoadUserGraph(ctx, userID)
}

// UpdateUserStatus activates, deactivates or bans a user
func (s *AdminService) UpdateUserStatus(ctx context.Context, userID uint, status domain.UserStatus) (*domain.User, error) {
	if !status.IsValid() { // Reject unknown statuses
		return nil, domain.ErrInvalidEnum
	}
	user, err := repository.FindByID[domain.User](ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	user.Status = status
	if err := repository.Update(ctx, s.store, user, user.ID); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "status": status.String()}).Info("User status updated")
	s.invalidateUsers(ctx)
	return user, nil
}

// DeleteUser removes a user and everything it owns
func (s *AdminService) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.store.DeleteUserCascade(ctx, userID); err != nil {
		return err
	}
	logrus.WithField("user_id", userID).Warn("User deleted")
	s.invalidateUsers(ctx, userID)
	return nil
}
