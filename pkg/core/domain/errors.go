package domain

import "errors"

var (
	// ErrNotFound indicates the short code does not exist.
	ErrNotFound = errors.New("link not found")

	// ErrExpired indicates the link has passed its expiry.
	ErrExpired = errors.New("link has expired")

	// ErrAliasTaken indicates the custom alias already exists in storage.
	ErrAliasTaken = errors.New("custom alias is already taken")

	// ErrWrongPassword indicates password verification failed.
	ErrWrongPassword = errors.New("invalid password")

	// Validation errors, surfaced to clients as 400s.
	ErrLongURLRequired = errors.New("longUrl is required")
	ErrAliasInvalid    = errors.New("custom alias can only contain lowercase letters, numbers, hyphens, and underscores")
	ErrAliasTooShort   = errors.New("custom alias must be at least 3 characters long")
	ErrAliasReserved   = errors.New("alias is reserved")
	ErrBadExpiry       = errors.New("invalid expiration date format")
)

// IsValidationError reports whether err is a malformed-input error rather
// than a conflict, lookup, or storage failure.
func IsValidationError(err error) bool {
	for _, v := range []error{
		ErrLongURLRequired,
		ErrAliasInvalid,
		ErrAliasTooShort,
		ErrAliasReserved,
		ErrBadExpiry,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
