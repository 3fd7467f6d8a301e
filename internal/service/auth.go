package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"
	"budgetmate/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Password length bounds; bcrypt ignores input past 72 bytes
const (
	MinPasswordLength = 8
	MaxPasswordLength = 64
)

// RegisterInput is the data needed to open an account
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	Token  string         `json:"token"`  // Signed JWT
	User   *domain.User   `json:"user"`   // Authenticated user
	Streak *CheckInResult `json:"streak"` // Check-in recorded by this login
}

// AuthService registers and authenticates users
type AuthService struct {
	store     *repository.Store
	streaks   *StreakService
	cache     cache
	jwtSecret string
	jwtTTL    time.Duration
}

// NewAuthService creates an AuthService
func NewAuthService(store *repository.Store, streaks *StreakService, rdb *redis.Client, jwtSecret string, jwtTTL time.Duration) *AuthService {
	return &AuthService{store: store, streaks: streaks, cache: newCache(rdb, 0), jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

// Register creates an ACTIVE user with the USER role
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if n := len(in.Password); n < MinPasswordLength || n > MaxPasswordLength {
		return nil, fmt.Errorf("%w: password must be %d-%d characters", domain.ErrValidation, MinPasswordLength, MaxPasswordLength)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user domain.User
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.FindUserByEmail(ctx, email); err == nil {
			return domain.ErrConflict
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		role, err := tx.FindRoleByName(ctx, domain.RoleUser)
		if err != nil {
			return fmt.Errorf("default role: %w", err)
		}
		user = domain.User{
			FullName: strings.TrimSpace(in.FullName),
			Email:    email,
			Password: string(hash),
			Status:   domain.UserStatusActive,
			RoleID:   role.ID,
		}
		if err := repository.Create(ctx, tx, &user); err != nil {
			return err
		}
		user.Role = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("User registered")
	s.cache.delPrefix(ctx, adminUsersPrefix) // New row in the admin listing
	return &user, nil
}

// Login checks credentials, counts the day's check-in and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != domain.UserStatusActive {
		return nil, domain.ErrUserInactive
	}

	streak, err := s.streaks.CheckIn(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}
	user.StreakDays = streak.StreakDays
	user.Credits = streak.Credits

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}
	token, err := utils.GenerateJWT(user.ID, roleName, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": roleName}).Info("User logged in")
	return &LoginResult{Token: token, User: user, Streak: streak}, nil
}

// Me returns the user with role and pet
func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return repository.FindByID[domain.User](ctx, s.store, userID, "Role", "Pet")
}
