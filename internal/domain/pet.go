package domain

// Pet Model, the companion a user can adopt
type Pet struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                                      // Primary key
	Name        string `gorm:"size:128;not null" json:"name" validate:"required,max=128"` // Pet name
	Description string `gorm:"type:text" json:"description" validate:"max=2000"`          // Free text description
}

// Validate checks the pet fields
func (p *Pet) Validate() error {
	return validateStruct(p)
}
