package domain

import (
	"fmt"

	"gorm.io/datatypes"
)

// Wallet Model
type Wallet struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                                                          // Primary key
	Type         WalletType      `gorm:"size:32;not null" json:"type" validate:"required"`                              // DEFAULT, SAVINGS or DEBT
	Name         string          `gorm:"size:255;not null" json:"name" validate:"required,max=255"`                     // Wallet name
	Balance      float64         `gorm:"not null;default:0" json:"balance"`                                             // Current balance
	TargetAmount float64         `gorm:"column:target_amount;not null;default:0" json:"target_amount" validate:"gte=0"` // Savings goal
	InterestRate float64         `gorm:"column:interest_rate;not null;default:0" json:"interest_rate" validate:"gte=0"` // Yearly rate in percent
	Deadline     *datatypes.Date `json:"deadline,omitempty" validate:"-"`                                               // Goal deadline
	UserID       uint            `gorm:"not null;index" json:"user_id" validate:"required"`                             // Foreign key to User
	User         *User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-" validate:"-"`          // Owner, loaded on demand
}

// Validate checks the wallet fields
func (w *Wallet) Validate() error {
	if err := validateStruct(w); err != nil {
		return err
	}
	if !w.Type.IsValid() {
		return ErrInvalidEnum
	}
	return nil
}

// ValidateOpening checks the balance a wallet is opened with; only debt wallets may start negative.
// Expenses can later overdraw any wallet.
func (w *Wallet) ValidateOpening() error {
	if w.Balance < 0 && w.Type != WalletTypeDebt {
		return fmt.Errorf("%w: Balance: gte", ErrValidation)
	}
	return w.Validate()
}

// Progress returns how much of a savings target has been reached, in [0, 1]
func (w *Wallet) Progress() float64 {
	if w.Type != WalletTypeSavings || w.TargetAmount <= 0 || w.Balance <= 0 {
		return 0
	}
	if w.Balance >= w.TargetAmount {
		return 1
	}
	return w.Balance / w.TargetAmount
}
