package domain

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

// daysPerMonthFraction converts the fractional part of a plan duration into days
const daysPerMonthFraction = 30

// MembershipPlan Model
type MembershipPlan struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`                                      // Primary key
	Name        string                      `gorm:"size:128;not null" json:"name" validate:"required,max=128"` // Plan name
	Description string                      `gorm:"type:text" json:"description"`                              // Plan description
	Price       float64                     `gorm:"not null;default:0" json:"price" validate:"gte=0"`          // Price per period
	Duration    float64                     `gorm:"not null" json:"duration" validate:"gt=0"`                  // Length in months
	Features    datatypes.JSONSlice[string] `json:"features" validate:"-"`                                     // Feature labels shown to users
}

// Validate checks the plan fields
func (p *MembershipPlan) Validate() error {
	return validateStruct(p)
}

// IsFree reports whether subscribing needs no payment
func (p *MembershipPlan) IsFree() bool {
	return p.Price == 0
}

// EndDate computes the end of a subscription to this plan starting at start
func (p *MembershipPlan) EndDate(start time.Time) time.Time {
	months, frac := math.Modf(p.Duration)
	days := int(math.Round(frac * daysPerMonthFraction))
	return start.AddDate(0, int(months), days)
}
