package models

import (
	"errors"
)

var (
	ErrComplaintNotFound  = errors.New("models: complaint not found")
	ErrQuotationNotFound  = errors.New("models: quotation not found")
	ErrVendorNotFound     = errors.New("models: vendor not found")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidTransition  = errors.New("models: invalid status transition")
	ErrVendorNotVerified  = errors.New("models: vendor not verified")
	ErrVendorExists       = errors.New("models: vendor profile already exists")
	ErrFeedbackExists     = errors.New("models: feedback already submitted")
	ErrFeedbackNotFound   = errors.New("models: feedback not found")
	ErrInvalidRating      = errors.New("models: rating must be between 1 and 5")
	ErrInvalidPrice       = errors.New("models: price must not be negative")
	ErrPermissionDenied   = errors.New("models: permission denied")
	ErrMissingFields      = errors.New("models: required fields missing")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
)
