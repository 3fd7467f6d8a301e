package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"budgetmate/internal/domain"
	"budgetmate/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var userSeq int

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(testutil.NewDB(t))
}

func roleID(t *testing.T, s *Store, name string) uint {
	t.Helper()
	role, err := s.FindRoleByName(context.Background(), name)
	require.NoError(t, err)
	return role.ID
}

func createUser(t *testing.T, s *Store, role string) *domain.User {
	t.Helper()
	userSeq++
	u := &domain.User{
		FullName: "Test User",
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "hash",
		Status:   domain.UserStatusActive,
		RoleID:   roleID(t, s, role),
	}
	require.NoError(t, Create(context.Background(), s, u))
	return u
}

func createWallet(t *testing.T, s *Store, userID uint, balance float64) *domain.Wallet {
	t.Helper()
	w := &domain.Wallet{Type: domain.WalletTypeDefault, Name: "Cash", Balance: balance, UserID: userID}
	require.NoError(t, Create(context.Background(), s, w))
	return w
}

func categoryByName(t *testing.T, s *Store, name string) *domain.Category {
	t.Helper()
	var c domain.Category
	require.NoError(t, s.DB().Where("name = ?", name).First(&c).Error)
	return &c
}

func createTransaction(t *testing.T, s *Store, walletID, categoryID uint, amount float64, at time.Time) *domain.Transaction {
	t.Helper()
	tx := &domain.Transaction{Amount: amount, TransactionTime: at, CategoryID: categoryID, WalletID: walletID}
	require.NoError(t, Create(context.Background(), s, tx))
	return tx
}

func createPlan(t *testing.T, s *Store, price float64) *domain.MembershipPlan {
	t.Helper()
	p := &domain.MembershipPlan{Name: "Plan", Price: price, Duration: 1, Features: datatypes.JSONSlice[string]{"charts"}}
	require.NoError(t, Create(context.Background(), s, p))
	return p
}

func createSubscription(t *testing.T, s *Store, userID, planID uint, status domain.SubscriptionStatus, start time.Time) *domain.Subscription {
	t.Helper()
	sub := &domain.Subscription{
		StartDate:        datatypes.Date(start),
		EndDate:          datatypes.Date(start.AddDate(0, 1, 0)),
		Status:           status,
		PaymentMethod:    domain.PaymentMethodCreditCard,
		PaymentStatus:    domain.PaymentStatusCompleted,
		MembershipPlanID: planID,
		UserID:           userID,
	}
	require.NoError(t, Create(context.Background(), s, sub))
	return sub
}

func createQuestion(t *testing.T, s *Store, text string) (*domain.Question, []domain.Answer) {
	t.Helper()
	q := &domain.Question{Type: "saving", Text: text}
	answers := []domain.Answer{{Text: "right", IsCorrect: true}, {Text: "wrong"}}
	require.NoError(t, s.CreateQuestion(context.Background(), q, answers))
	return q, answers
}
