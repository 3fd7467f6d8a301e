package service

import (
	"context"
	"testing"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoles(t *testing.T) {
	f := newWalletFixture(t)
	admin := NewAdminService(f.store, nil, time.Minute)
	ctx := context.Background()

	role, err := admin.CreateRole(ctx, "AUDITOR")
	require.NoError(t, err)
	_, err = admin.CreateRole(ctx, "AUDITOR")
	assert.ErrorIs(t, err, domain.ErrConflict)

	roles, err := admin.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)

	removed, err := admin.DeleteRole(ctx, role.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDeleteUserRoleRemovesMembers(t *testing.T) {
	f := newWalletFixture(t)
	admin := NewAdminService(f.store, nil, time.Minute)
	ctx := context.Background()
	a := registerUser(t, f.auth)
	b := registerUser(t, f.auth)
	_, err := f.wallets.Create(ctx, a.ID, WalletInput{Type: domain.WalletTypeDefault, Name: "Main"})
	require.NoError(t, err)

	removed, err := admin.DeleteRole(ctx, a.RoleID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = f.auth.Me(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveUserFromRole(t *testing.T) {
	f := newWalletFixture(t)
	admin := NewAdminService(f.store, nil, time.Minute)
	ctx := context.Background()
	user := registerUser(t, f.auth)

	require.NoError(t, admin.RemoveUserFromRole(ctx, user.RoleID, user.ID))
	_, err := admin.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, admin.RemoveUserFromRole(ctx, user.RoleID, user.ID), domain.ErrNotFound)
}

func TestListUsersWithWallets(t *testing.T) {
	f := newWalletFixture(t)
	admin := NewAdminService(f.store, nil, time.Minute)
	ctx := context.Background()
	a := registerUser(t, f.auth)
	b := registerUser(t, f.auth)
	registerUser(t, f.auth)
	for _, name := range []string{"One", "Two"} {
		_, err := f.wallets.Create(ctx, a.ID, WalletInput{Type: domain.WalletTypeDefault, Name: name})
		require.NoError(t, err)
	}
	_, err := f.wallets.Create(ctx, b.ID, WalletInput{Type: domain.WalletTypeSavings, Name: "Save"})
	require.NoError(t, err)

	page, cached, err := admin.ListUsers(ctx, repository.NewPage(1, 2))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Users, 2)
	assert.Len(t, page.Users[0].Wallets, 2)
	assert.Len(t, page.Users[1].Wallets, 1)
	require.NotNil(t, page.Users[0].Role)

	last, _, err := admin.ListUsers(ctx, repository.NewPage(2, 2))
	require.NoError(t, err)
	require.Len(t, last.Users, 1)
	assert.NotNil(t, last.Users[0].Wallets)
	assert.Empty(t, last.Users[0].Wallets)
}

func TestUserStatusAndDelete(t *testing.T) {
	f := newWalletFixture(t)
	admin := NewAdminService(f.store, nil, time.Minute)
	ctx := context.Background()
	user := registerUser(t, f.auth)

	updated, err := admin.UpdateUserStatus(ctx, user.ID, domain.UserStatusBanned)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusBanned, updated.Status)

	_, err = admin.UpdateUserStatus(ctx, user.ID, domain.UserStatus(99))
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)

	_, err = f.auth.Login(ctx, user.Email, "password123")
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	graph, err := admin.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, graph.User.Email)

	require.NoError(t, admin.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, admin.DeleteUser(ctx, user.ID), domain.ErrNotFound)
}

func TestListAllTransactions(t *testing.T) {
	f := newWalletFixture(t)
	admin := NewAdminService(f.store, nil, time.Minute)
	ctx := context.Background()
	food := category(t, f.store, "Food")
	for _, u := range []*domain.User{registerUser(t, f.auth), registerUser(t, f.auth)} {
		w, err := f.wallets.Create(ctx, u.ID, WalletInput{Type: domain.WalletTypeDefault, Name: "Main", Balance: 50})
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			_, err := f.txs.Create(ctx, u.ID, TransactionInput{WalletID: w.ID, CategoryID: food.ID, Amount: 5})
			require.NoError(t, err)
		}
	}

	page, cached, err := admin.ListTransactions(ctx, repository.NewPage(1, 3))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Transactions, 3)
	require.NotNil(t, page.Transactions[0].Category)
	assert.Equal(t, "Food", page.Transactions[0].Category.Name)
}
