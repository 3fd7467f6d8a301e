package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestUserValidate(t *testing.T) {
	valid := User{Email: "a@example.com", Password: "hash", Status: UserStatusActive, RoleID: 1}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Email = "not-an-email"
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = valid
	bad.Status = 0
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = valid
	bad.RoleID = 0
	assert.ErrorIs(t, bad.Validate(), ErrValidation)
}

func TestUserIsAdmin(t *testing.T) {
	assert.False(t, (&User{}).IsAdmin())
	assert.False(t, (&User{Role: &Role{Name: RoleUser}}).IsAdmin())
	assert.True(t, (&User{Role: &Role{Name: RoleAdmin}}).IsAdmin())
}

func TestWalletValidate(t *testing.T) {
	w := Wallet{Type: WalletTypeDefault, Name: "Cash", UserID: 1}
	assert.NoError(t, w.Validate())

	w.Balance = -10
	assert.NoError(t, w.Validate(), "expenses may overdraw a wallet")
	assert.ErrorIs(t, w.ValidateOpening(), ErrValidation)

	w.Type = WalletTypeDebt
	assert.NoError(t, w.ValidateOpening(), "debt wallets may open negative")

	w.TargetAmount = -1
	assert.ErrorIs(t, w.Validate(), ErrValidation)
}

func TestWalletProgress(t *testing.T) {
	tests := []struct {
		name   string
		wallet Wallet
		want   float64
	}{
		{"default wallet", Wallet{Type: WalletTypeDefault, Balance: 50, TargetAmount: 100}, 0},
		{"no target", Wallet{Type: WalletTypeSavings, Balance: 50}, 0},
		{"half way", Wallet{Type: WalletTypeSavings, Balance: 50, TargetAmount: 200}, 0.25},
		{"reached", Wallet{Type: WalletTypeSavings, Balance: 300, TargetAmount: 200}, 1},
		{"negative", Wallet{Type: WalletTypeSavings, Balance: -5, TargetAmount: 200}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.wallet.Progress(), 1e-9)
		})
	}
}

func TestCategorySigned(t *testing.T) {
	assert.Equal(t, 25.0, (&Category{Type: CategoryTypeIncome}).Signed(25))
	assert.Equal(t, -25.0, (&Category{Type: CategoryTypeExpense}).Signed(25))
}

func TestTransactionValidate(t *testing.T) {
	tx := Transaction{Amount: 10, TransactionTime: time.Now(), CategoryID: 1, WalletID: 1}
	assert.NoError(t, tx.Validate())

	tx.Amount = 0
	assert.ErrorIs(t, tx.Validate(), ErrValidation)
}

func TestMembershipPlanEndDate(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		duration float64
		want     time.Time
	}{
		{1, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)},
		{12, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{0.5, time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC)},
		{1.5, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		plan := MembershipPlan{Name: "p", Duration: tt.duration}
		assert.Equal(t, tt.want, plan.EndDate(start), "duration %v", tt.duration)
	}
}

func TestMembershipPlanValidate(t *testing.T) {
	assert.NoError(t, (&MembershipPlan{Name: "Free", Duration: 1}).Validate())
	assert.ErrorIs(t, (&MembershipPlan{Name: "Bad", Price: -1, Duration: 1}).Validate(), ErrValidation)
	assert.ErrorIs(t, (&MembershipPlan{Name: "Bad", Duration: 0}).Validate(), ErrValidation)
	assert.True(t, (&MembershipPlan{}).IsFree())
}

func TestSubscriptionValidateDateRange(t *testing.T) {
	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	sub := Subscription{
		StartDate:        datatypes.Date(start),
		EndDate:          datatypes.Date(start.AddDate(0, 1, 0)),
		Status:           SubscriptionStatusActive,
		PaymentMethod:    PaymentMethodCreditCard,
		PaymentStatus:    PaymentStatusCompleted,
		MembershipPlanID: 1,
		UserID:           1,
	}
	assert.NoError(t, sub.Validate())

	sub.EndDate = datatypes.Date(start.AddDate(0, 0, -1))
	assert.ErrorIs(t, sub.Validate(), ErrInvalidDateRange)

	sub.EndDate = sub.StartDate
	assert.NoError(t, sub.Validate(), "a single day subscription is valid")
}

func TestSubscriptionTransition(t *testing.T) {
	sub := Subscription{Status: SubscriptionStatusPending}
	assert.NoError(t, sub.Transition(SubscriptionStatusActive))
	assert.Equal(t, SubscriptionStatusActive, sub.Status)

	assert.ErrorIs(t, sub.Transition(SubscriptionStatusPending), ErrInvalidTransition)
	assert.Equal(t, SubscriptionStatusActive, sub.Status)
}

func TestSubscriptionEndedBefore(t *testing.T) {
	end := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)
	sub := Subscription{EndDate: datatypes.Date(end)}
	assert.False(t, sub.EndedBefore(end.Add(23*time.Hour)), "the last day still counts")
	assert.True(t, sub.EndedBefore(end.AddDate(0, 0, 1)))
}

func TestTruncateDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	in := time.Date(2024, time.March, 2, 3, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), TruncateDay(in))
}

func TestValidateAnswerSet(t *testing.T) {
	assert.ErrorIs(t, ValidateAnswerSet([]Answer{{Text: "only", IsCorrect: true}}), ErrValidation)
	assert.ErrorIs(t, ValidateAnswerSet([]Answer{{Text: "a"}, {Text: "b"}}), ErrValidation)
	assert.ErrorIs(t, ValidateAnswerSet([]Answer{{Text: ""}, {Text: "b", IsCorrect: true}}), ErrValidation)
	assert.NoError(t, ValidateAnswerSet([]Answer{{Text: "a"}, {Text: "b", IsCorrect: true}}))
}

func TestIndexBy(t *testing.T) {
	wallets := []Wallet{{ID: 1, UserID: 7}, {ID: 2, UserID: 8}, {ID: 3, UserID: 7}}
	byUser := IndexBy(wallets, func(w Wallet) uint { return w.UserID })
	assert.Len(t, byUser, 2)
	assert.Equal(t, []uint{1, 3}, IDs(byUser[7], func(w Wallet) uint { return w.ID }))
	assert.Nil(t, byUser[9])
}
