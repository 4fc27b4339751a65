package entity

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientCredit = errors.New("insufficient credit")
	// ErrCodeNotFound covers wrong, expired and already used codes alike
	ErrCodeNotFound         = errors.New("invalid or expired code")
	ErrWrongSalon           = errors.New("code belongs to another salon")
	ErrSalonNotApproved     = errors.New("salon is not approved")
	ErrInvalidPlan          = errors.New("invalid plan")
	ErrPlanInUse            = errors.New("plan is referenced by subscriptions")
	ErrSalonLocked          = errors.New("subscription already linked to a salon")
	ErrWithdrawalNotAllowed = errors.New("withdrawal not allowed")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrForbidden            = errors.New("forbidden")
	ErrAlreadyRegistered    = errors.New("already registered")
	ErrInvalidInput         = errors.New("invalid input")
	ErrTooManyAttempts      = errors.New("too many failed attempts, try again later")
	// ErrConcurrentUpdate means another transaction won a uniqueness race; the caller may retry
	ErrConcurrentUpdate = errors.New("concurrent update, retry")
)
