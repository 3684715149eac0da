package domain

import (
	"regexp"
	"strings"
)

// MinAliasLength is the minimum length of a custom alias.
const MinAliasLength = 3

var aliasPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// reservedAliases are short codes that collide with the service's own
// route namespace and must never resolve as links.
var reservedAliases = map[string]struct{}{
	"app":             {},
	"shorten":         {},
	"login":           {},
	"signup":          {},
	"auth":            {},
	"admin":           {},
	"dashboard":       {},
	"static":          {},
	"api":             {},
	"help":            {},
	"healthz":         {},
	"verify_password": {},
}

// IsReservedAlias reports whether code belongs to the reserved set.
// The check is case-insensitive.
func IsReservedAlias(code string) bool {
	_, ok := reservedAliases[strings.ToLower(code)]
	return ok
}

// ValidateCustomAlias checks a lower-cased custom alias against the
// charset, reserved-word, and length rules. Availability is checked
// separately against storage.
func ValidateCustomAlias(alias string) error {
	if !aliasPattern.MatchString(alias) {
		return ErrAliasInvalid
	}
	if IsReservedAlias(alias) {
		return ErrAliasReserved
	}
	if len(alias) < MinAliasLength {
		return ErrAliasTooShort
	}
	return nil
}
