package domain

// Built-in role names
const (
	RoleAdmin = "ADMIN" // Full management access
	RoleUser  = "USER"  // Default role for registered users
)

// Role Model
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`                                           // Primary key
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name" validate:"required,max=64"` // Unique role name
}

// Validate checks the role fields
func (r *Role) Validate() error {
	return validateStruct(r)
}
