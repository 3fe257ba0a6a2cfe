package domain

import (
	"regexp"
	"strings"
)

// Identity customer keys used by the anti-abuse limits.
// Two requests belong to the same identity if any non-empty key matches.
type Identity struct {
	Email    string
	Phone    string
	IDNumber string
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DigitsOnly keeps only decimal digits
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// emailPattern local@domain.tld without whitespace or extra '@'.
// Dotted local parts such as a..b@mail.com are accepted.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks a normalized address for a single local@domain.tld form
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NewIdentity normalizes raw contact fields
func NewIdentity(email, phone, idNumber string) Identity {
	return Identity{
		Email:    NormalizeEmail(email),
		Phone:    DigitsOnly(phone),
		IDNumber: DigitsOnly(idNumber),
	}
}
