package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumNamesAreBijective(t *testing.T) {
	for v, name := range walletTypes.names {
		parsed, err := ParseWalletType(name)
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
	for v, name := range subscriptionStatuses.names {
		parsed, err := ParseSubscriptionStatus(name)
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
	assert.Len(t, paymentMethods.values, len(paymentMethods.names))
	assert.Len(t, paymentStatuses.values, len(paymentStatuses.names))
	assert.Len(t, userStatuses.values, len(userStatuses.names))
	assert.Len(t, categoryTypes.values, len(categoryTypes.names))
}

func TestParseRejectsUnknownNames(t *testing.T) {
	_, err := ParseUserStatus("DELETED")
	assert.ErrorIs(t, err, ErrInvalidEnum)

	_, err = ParsePaymentMethod("credit_card")
	assert.ErrorIs(t, err, ErrInvalidEnum, "names are case sensitive")
}

func TestEnumValueWritesName(t *testing.T) {
	v, err := PaymentMethodEWallet.Value()
	require.NoError(t, err)
	assert.Equal(t, "E_WALLET", v)

	_, err = WalletType(0).Value()
	assert.ErrorIs(t, err, ErrInvalidEnum, "the unset value is never written")

	_, err = CategoryType(42).Value()
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestEnumScan(t *testing.T) {
	var s PaymentStatus
	require.NoError(t, s.Scan("REFUNDED"))
	assert.Equal(t, PaymentStatusRefunded, s)

	require.NoError(t, s.Scan([]byte("FAILED")))
	assert.Equal(t, PaymentStatusFailed, s)

	assert.ErrorIs(t, s.Scan("CHARGEBACK"), ErrInvalidEnum)
	assert.ErrorIs(t, s.Scan(int64(2)), ErrInvalidEnum)
}

func TestEnumJSON(t *testing.T) {
	type body struct {
		Type   WalletType         `json:"type"`
		Status SubscriptionStatus `json:"status"`
	}
	out, err := json.Marshal(body{Type: WalletTypeSavings, Status: SubscriptionStatusCancelled})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"SAVINGS","status":"CANCELLED"}`, string(out))

	var in body
	require.NoError(t, json.Unmarshal([]byte(`{"type":"DEBT","status":""}`), &in))
	assert.Equal(t, WalletTypeDebt, in.Type)
	assert.Equal(t, SubscriptionStatus(0), in.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"GOLD"}`), &in))
}

func TestSubscriptionTransitions(t *testing.T) {
	tests := []struct {
		from, to SubscriptionStatus
		allowed  bool
	}{
		{SubscriptionStatusPending, SubscriptionStatusActive, true},
		{SubscriptionStatusPending, SubscriptionStatusCancelled, true},
		{SubscriptionStatusPending, SubscriptionStatusExpired, false},
		{SubscriptionStatusActive, SubscriptionStatusExpired, true},
		{SubscriptionStatusActive, SubscriptionStatusCancelled, true},
		{SubscriptionStatusActive, SubscriptionStatusPending, false},
		{SubscriptionStatusExpired, SubscriptionStatusActive, false},
		{SubscriptionStatusCancelled, SubscriptionStatusActive, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
