package services

import "errors"

// Client-facing rejections. None of these are retriable; controllers map them
// straight to HTTP statuses.
var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrOAuthExchangeFailed = errors.New("failed to get user info from provider")
	ErrNotFound            = errors.New("record not found")
)
