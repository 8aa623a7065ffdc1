package domain

import "errors"

// Validation and account errors
var (
	ErrInvalidInput       = errors.New("missing or malformed fields")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidPhone       = errors.New("phone must be +994 followed by 9 digits")
	ErrNotFound           = errors.New("not found")
)

// Session and access errors
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
)

// Rating errors
var (
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	ErrAlreadyRated  = errors.New("ride already rated by this passenger")
)

// Reset broker errors
var ErrInvalidOrExpiredToken = errors.New("reset token is invalid or has expired")

// External collaborator errors
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")
