package domain

// Category Model, classifies transactions as income or expense
type Category struct {
	ID   uint         `gorm:"primaryKey" json:"id"`                                                  // Primary key
	Name string       `gorm:"size:128;uniqueIndex;not null" json:"name" validate:"required,max=128"` // Unique category name
	Type CategoryType `gorm:"size:32;not null" json:"type" validate:"required"`                      // INCOME or EXPENSE
}

// Validate checks the category fields
func (c *Category) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if !c.Type.IsValid() {
		return ErrInvalidEnum
	}
	return nil
}

// Signed returns the balance effect of amount under this category
func (c *Category) Signed(amount float64) float64 {
	if c.Type == CategoryTypeExpense {
		return -amount
	}
	return amount
}
