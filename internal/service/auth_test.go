package service

import (
	"context"
	"testing"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"
	"budgetmate/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T, clock *fakeClock) (*AuthService, *repository.Store) {
	t.Helper()
	store := newTestStore(t)
	streaks := NewStreakService(store, 1, nil, clock.clock())
	return NewAuthService(store, streaks, nil, testSecret, time.Hour), store
}

func TestRegister(t *testing.T) {
	auth, _ := newAuth(t, newFakeClock())
	ctx := context.Background()

	user, err := auth.Register(ctx, RegisterInput{Email: " Alice@Example.com ", Password: "password123", FullName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	require.NotNil(t, user.Role)
	assert.Equal(t, domain.RoleUser, user.Role.Name)
	assert.NotEqual(t, "password123", user.Password)

	_, err = auth.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	auth, _ := newAuth(t, newFakeClock())
	ctx := context.Background()

	_, err := auth.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = auth.Register(ctx, RegisterInput{Email: "not-an-email", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin(t *testing.T) {
	clock := newFakeClock()
	auth, _ := newAuth(t, clock)
	ctx := context.Background()
	user := registerUser(t, auth)

	result, err := auth.Login(ctx, user.Email, "password123")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak.StreakDays)
	assert.True(t, result.Streak.Counted)
	assert.Equal(t, 1, result.User.Credits)

	claims, err := utils.ParseJWT(result.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	again, err := auth.Login(ctx, user.Email, "password123")
	require.NoError(t, err)
	assert.False(t, again.Streak.Counted, "second login on the same day")
	assert.Equal(t, 1, again.User.Credits)
}

func TestLoginFailures(t *testing.T) {
	auth, store := newAuth(t, newFakeClock())
	ctx := context.Background()
	user := registerUser(t, auth)

	_, err := auth.Login(ctx, user.Email, "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = auth.Login(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	user.Status = domain.UserStatusBanned
	user.Role = nil
	require.NoError(t, repository.Update(ctx, store, user, user.ID))
	_, err = auth.Login(ctx, user.Email, "password123")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestMe(t *testing.T) {
	auth, _ := newAuth(t, newFakeClock())
	user := registerUser(t, auth)

	me, err := auth.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)
	require.NotNil(t, me.Role)

	_, err = auth.Me(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
