package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/repository"
	"budgetmate/internal/testutil"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeClock is a settable time source
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) clock() Clock { return func() time.Time { return f.t } }

func (f *fakeClock) advanceDays(n int) { f.t = f.t.AddDate(0, 0, n) }

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.NewStore(testutil.NewDB(t))
}

var emailSeq int

func registerUser(t *testing.T, auth *AuthService) *domain.User {
	t.Helper()
	emailSeq++
	user, err := auth.Register(context.Background(), RegisterInput{
		Email:    fmt.Sprintf("member%d@example.com", emailSeq),
		Password: "password123",
		FullName: "Member",
	})
	require.NoError(t, err)
	return user
}

func category(t *testing.T, store *repository.Store, name string) *domain.Category {
	t.Helper()
	var c domain.Category
	require.NoError(t, store.DB().Where("name = ?", name).First(&c).Error)
	return &c
}
