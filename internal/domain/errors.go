package domain

import "errors"

// Sentinel errors shared by the repository, service and api layers
var (
	ErrNotFound           = errors.New("record not found")
	ErrParentNotFound     = errors.New("referenced parent record not found")
	ErrForbidden          = errors.New("access to record denied")
	ErrConflict           = errors.New("record already exists")
	ErrInUse              = errors.New("record is still referenced")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidEnum        = errors.New("invalid enum value")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is not active")
	ErrAlreadyAnswered    = errors.New("question already answered")
	ErrDailyLimitReached  = errors.New("daily quiz limit reached")
	ErrAnswerMismatch     = errors.New("answer does not belong to question")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrActiveSubscription = errors.New("user already has an active or pending subscription")
)
