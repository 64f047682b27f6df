package utils

import "strings"

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// The normalized form is the canonical user identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
