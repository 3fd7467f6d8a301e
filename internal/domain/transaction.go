package domain

import "time"

// Transaction Model
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`                                                             // Primary key
	Amount          float64   `gorm:"not null" json:"amount" validate:"gt=0"`                                           // Always positive, sign comes from the category
	Description     string    `gorm:"size:512" json:"description" validate:"max=512"`                                   // Free text note
	TransactionTime time.Time `gorm:"column:transaction_time;not null;index" json:"transaction_time" validate:"required"` // When it happened
	CategoryID      uint      `gorm:"not null;index" json:"category_id" validate:"required"`                            // Foreign key to Category
	Category        *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty" validate:"-"`
	WalletID        uint      `gorm:"not null;index" json:"wallet_id" validate:"required"` // Foreign key to Wallet
	Wallet          *Wallet   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-" validate:"-"`
}

// Validate checks the transaction fields
func (t *Transaction) Validate() error {
	return validateStruct(t)
}

// WalletTotals aggregates the transactions of one wallet
type WalletTotals struct {
	Income  float64 `json:"total_income"`  // Sum of INCOME amounts
	Expense float64 `json:"total_expense"` // Sum of EXPENSE amounts
	Count   int64   `json:"count"`         // Number of transactions
}
