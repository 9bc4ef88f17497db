package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPhoneExists        = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrInvalidPhone       = errors.New("a valid 10-digit phone number is required")
	ErrNameRequired       = errors.New("name is required")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)
