package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Subscription Model
type Subscription struct {
	ID               uint               `gorm:"primaryKey" json:"id"`                                                   // Primary key
	StartDate        datatypes.Date     `gorm:"column:start_date;not null" json:"start_date" validate:"-"`              // First day of access
	EndDate          datatypes.Date     `gorm:"column:end_date;not null" json:"end_date" validate:"-"`                  // Last day of access
	Status           SubscriptionStatus `gorm:"size:32;not null;index" json:"status" validate:"required"`               // Billing state
	PaymentMethod    PaymentMethod      `gorm:"column:payment_method;size:32;not null" json:"payment_method" validate:"required"`
	PaymentStatus    PaymentStatus      `gorm:"column:payment_status;size:32;not null" json:"payment_status" validate:"required"`
	MembershipPlanID uint               `gorm:"column:membership_plan_id;not null;index" json:"membership_plan_id" validate:"required"`
	MembershipPlan   *MembershipPlan    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"membership_plan,omitempty" validate:"-"`
	UserID           uint               `gorm:"not null;index" json:"user_id" validate:"required"` // Foreign key to User
	User             *User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-" validate:"-"`
}

// Validate checks the subscription fields and its date range
func (s *Subscription) Validate() error {
	if err := validateStruct(s); err != nil {
		return err
	}
	if !s.Status.IsValid() || !s.PaymentMethod.IsValid() || !s.PaymentStatus.IsValid() {
		return ErrInvalidEnum
	}
	if time.Time(s.StartDate).After(time.Time(s.EndDate)) {
		return ErrInvalidDateRange
	}
	return nil
}

// Transition moves the subscription to next if the state machine allows it
func (s *Subscription) Transition(next SubscriptionStatus) error {
	if !s.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	s.Status = next
	return nil
}

// EndedBefore reports whether the last day of access is before day
func (s *Subscription) EndedBefore(day time.Time) bool {
	return time.Time(s.EndDate).Before(TruncateDay(day))
}

// TruncateDay returns midnight UTC of t's UTC calendar day
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
