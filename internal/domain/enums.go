package domain

import (
	"database/sql/driver"
	"fmt"
)

// enumTable is a bijective mapping between enum values and their stored symbolic names
type enumTable[T ~uint8] struct {
	kind   string       // Enum kind, used in error messages
	names  map[T]string // Value to symbolic name
	values map[string]T // Symbolic name to value
}

func newEnumTable[T ~uint8](kind string, names map[T]string) enumTable[T] {
	values := make(map[string]T, len(names))
	for v, n := range names {
		values[n] = v
	}
	return enumTable[T]{kind: kind, names: names, values: values}
}

func (e enumTable[T]) valid(v T) bool {
	_, ok := e.names[v]
	return ok
}

func (e enumTable[T]) name(v T) string {
	return e.names[v]
}

func (e enumTable[T]) parse(s string) (T, error) {
	if v, ok := e.values[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %s %q", ErrInvalidEnum, e.kind, s)
}

// value renders v for the database; the zero value is never written
func (e enumTable[T]) value(v T) (driver.Value, error) {
	if !e.valid(v) {
		return nil, fmt.Errorf("%w: %s %d", ErrInvalidEnum, e.kind, v)
	}
	return e.names[v], nil
}

// scan decodes a column value, rejecting names outside the table
func (e enumTable[T]) scan(src any) (T, error) {
	switch s := src.(type) {
	case string:
		return e.parse(s)
	case []byte:
		return e.parse(string(s))
	}
	return 0, fmt.Errorf("%w: cannot scan %T into %s", ErrInvalidEnum, src, e.kind)
}

// unmarshal accepts the empty string as the unset value so that binding:"required" can report it
func (e enumTable[T]) unmarshal(b []byte) (T, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return e.parse(string(b))
}

// UserStatus is the lifecycle state of an account
type UserStatus uint8

const (
	UserStatusActive UserStatus = iota + 1
	UserStatusInactive
	UserStatusBanned
)

var userStatuses = newEnumTable("user status", map[UserStatus]string{
	UserStatusActive:   "ACTIVE",
	UserStatusInactive: "INACTIVE",
	UserStatusBanned:   "BANNED",
})

func ParseUserStatus(s string) (UserStatus, error) { return userStatuses.parse(s) }
func (s UserStatus) String() string { return userStatuses.name(s) }
func (s UserStatus) IsValid() bool { return userStatuses.valid(s) }
func (UserStatus) GormDataType() string { return "string" }
func (s UserStatus) Value() (driver.Value, error) { return userStatuses.value(s) }
func (s UserStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *UserStatus) Scan(src any) (err error) {
	*s, err = userStatuses.scan(src)
	return err
}

func (s *UserStatus) UnmarshalText(b []byte) (err error) {
	*s, err = userStatuses.unmarshal(b)
	return err
}

// WalletType distinguishes spending wallets from savings goals and debts
type WalletType uint8

const (
	WalletTypeDefault WalletType = iota + 1
	WalletTypeSavings
	WalletTypeDebt
)

var walletTypes = newEnumTable("wallet type", map[WalletType]string{
	WalletTypeDefault: "DEFAULT",
	WalletTypeSavings: "SAVINGS",
	WalletTypeDebt:    "DEBT",
})

func ParseWalletType(s string) (WalletType, error) { return walletTypes.parse(s) }
func (t WalletType) String() string { return walletTypes.name(t) }
func (t WalletType) IsValid() bool { return walletTypes.valid(t) }
func (WalletType) GormDataType() string { return "string" }
func (t WalletType) Value() (driver.Value, error) { return walletTypes.value(t) }
func (t WalletType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *WalletType) Scan(src any) (err error) {
	*t, err = walletTypes.scan(src)
	return err
}

func (t *WalletType) UnmarshalText(b []byte) (err error) {
	*t, err = walletTypes.unmarshal(b)
	return err
}

// CategoryType decides whether a transaction adds to or draws from a wallet
type CategoryType uint8

const (
	CategoryTypeIncome CategoryType = iota + 1
	CategoryTypeExpense
)

var categoryTypes = newEnumTable("category type", map[CategoryType]string{
	CategoryTypeIncome:  "INCOME",
	CategoryTypeExpense: "EXPENSE",
})

func ParseCategoryType(s string) (CategoryType, error) { return categoryTypes.parse(s) }
func (t CategoryType) String() string { return categoryTypes.name(t) }
func (t CategoryType) IsValid() bool { return categoryTypes.valid(t) }
func (CategoryType) GormDataType() string { return "string" }
func (t CategoryType) Value() (driver.Value, error) { return categoryTypes.value(t) }
func (t CategoryType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *CategoryType) Scan(src any) (err error) {
	*t, err = categoryTypes.scan(src)
	return err
}

func (t *CategoryType) UnmarshalText(b []byte) (err error) {
	*t, err = categoryTypes.unmarshal(b)
	return err
}

// SubscriptionStatus is the billing state of a subscription
type SubscriptionStatus uint8

const (
	SubscriptionStatusPending SubscriptionStatus = iota + 1
	SubscriptionStatusActive
	SubscriptionStatusExpired
	SubscriptionStatusCancelled
)

var subscriptionStatuses = newEnumTable("subscription status", map[SubscriptionStatus]string{
	SubscriptionStatusPending:   "PENDING",
	SubscriptionStatusActive:    "ACTIVE",
	SubscriptionStatusExpired:   "EXPIRED",
	SubscriptionStatusCancelled: "CANCELLED",
})

// subscriptionTransitions lists the allowed next states; EXPIRED and CANCELLED are terminal
var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionStatusPending: {SubscriptionStatusActive, SubscriptionStatusCancelled},
	SubscriptionStatusActive:  {SubscriptionStatusExpired, SubscriptionStatusCancelled},
}

func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	return subscriptionStatuses.parse(s)
}
func (s SubscriptionStatus) String() string { return subscriptionStatuses.name(s) }
func (s SubscriptionStatus) IsValid() bool { return subscriptionStatuses.valid(s) }
func (SubscriptionStatus) GormDataType() string { return "string" }
func (s SubscriptionStatus) Value() (driver.Value, error) { return subscriptionStatuses.value(s) }
func (s SubscriptionStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SubscriptionStatus) Scan(src any) (err error) {
	*s, err = subscriptionStatuses.scan(src)
	return err
}

func (s *SubscriptionStatus) UnmarshalText(b []byte) (err error) {
	*s, err = subscriptionStatuses.unmarshal(b)
	return err
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentMethod is how a subscription is paid
type PaymentMethod uint8

const (
	PaymentMethodCreditCard PaymentMethod = iota + 1
	PaymentMethodBankTransfer
	PaymentMethodEWallet
)

var paymentMethods = newEnumTable("payment method", map[PaymentMethod]string{
	PaymentMethodCreditCard:   "CREDIT_CARD",
	PaymentMethodBankTransfer: "BANK_TRANSFER",
	PaymentMethodEWallet:      "E_WALLET",
})

func ParsePaymentMethod(s string) (PaymentMethod, error) { return paymentMethods.parse(s) }
func (m PaymentMethod) String() string { return paymentMethods.name(m) }
func (m PaymentMethod) IsValid() bool { return paymentMethods.valid(m) }
func (PaymentMethod) GormDataType() string { return "string" }
func (m PaymentMethod) Value() (driver.Value, error) { return paymentMethods.value(m) }
func (m PaymentMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *PaymentMethod) Scan(src any) (err error) {
	*m, err = paymentMethods.scan(src)
	return err
}

func (m *PaymentMethod) UnmarshalText(b []byte) (err error) {
	*m, err = paymentMethods.unmarshal(b)
	return err
}

// PaymentStatus tracks the payment attached to a subscription
type PaymentStatus uint8

const (
	PaymentStatusPending PaymentStatus = iota + 1
	PaymentStatusCompleted
	PaymentStatusFailed
	PaymentStatusRefunded
)

var paymentStatuses = newEnumTable("payment status", map[PaymentStatus]string{
	PaymentStatusPending:   "PENDING",
	PaymentStatusCompleted: "COMPLETED",
	PaymentStatusFailed:    "FAILED",
	PaymentStatusRefunded:  "REFUNDED",
})

func ParsePaymentStatus(s string) (PaymentStatus, error) { return paymentStatuses.parse(s) }
func (s PaymentStatus) String() string { return paymentStatuses.name(s) }
func (s PaymentStatus) IsValid() bool { return paymentStatuses.valid(s) }
func (PaymentStatus) GormDataType() string { return "string" }
func (s PaymentStatus) Value() (driver.Value, error) { return paymentStatuses.value(s) }
func (s PaymentStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *PaymentStatus) Scan(src any) (err error) {
	*s, err = paymentStatuses.scan(src)
	return err
}

func (s *PaymentStatus) UnmarshalText(b []byte) (err error) {
	*s, err = paymentStatuses.unmarshal(b)
	return err
}
