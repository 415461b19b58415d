package util

import (
	"regexp"
	"strings"
)

// E.164: plus sign, non-zero leading digit, at most 15 digits total.
var phoneRegex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// NormalizePhone strips spaces, dashes and parentheses before validation so
// "+1 (415) 555-0100" imports cleanly.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, s)
}
