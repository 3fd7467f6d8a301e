package domain

import "time"

// User Model
type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`                                                            // Primary key
	FullName      string     `gorm:"column:full_name;size:255" json:"full_name" validate:"max=255"`                   // Display name
	Email         string     `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email,max=255"`    // Login email
	Password      string     `gorm:"size:255;not null" json:"-" validate:"required"`                                  // Bcrypt hash, never serialized
	StreakDays    int        `gorm:"column:streak_days;not null;default:0" json:"streak_days" validate:"gte=0"`       // Consecutive check-in days
	LastLoginDate *time.Time `gorm:"column:last_login_date" json:"last_login_date,omitempty"`                         // Last counted check-in
	Credits       int        `gorm:"not null;default:0" json:"credits" validate:"gte=0"`                              // Gamification credit balance
	Status        UserStatus `gorm:"size:32;not null" json:"status" validate:"required"`                              // Account status
	RoleID        uint       `gorm:"not null;index" json:"role_id" validate:"required"`                               // Foreign key to Role
	Role          *Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"role,omitempty" validate:"-"` // Loaded on demand
	PetID         *uint      `gorm:"index" json:"pet_id,omitempty"`                                                   // Optional foreign key to Pet
	Pet           *Pet       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"pet,omitempty" validate:"-"`  // Loaded on demand
}

// Validate checks the user fields
func (u *User) Validate() error {
	if err := validateStruct(u); err != nil {
		return err
	}
	if !u.Status.IsValid() {
		return ErrInvalidEnum
	}
	return nil
}

// IsAdmin reports whether the loaded role is the admin role
func (u *User) IsAdmin() bool {
	return u.Role != nil && u.Role.Name == RoleAdmin
}

// UserGraph is a user with its dependent records, assembled from per-table queries
type UserGraph struct {
	User          User           `json:"user"`
	Wallets       []Wallet       `json:"wallets"`
	Subscriptions []Subscription `json:"subscriptions"`
	QuizLogs      []QuizLog      `json:"quiz_logs"`
}
