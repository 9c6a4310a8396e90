// Package reset implements the two password-reset flows: OTP-based and
// reset-link-token-based.
package reset

import "strings"

var strengthLabels = []string{"", "Very Weak", "Weak", "Fair", "Good", "Strong"}

// Strength scores a password 0-5 from five criteria: length of at least 8,
// a lowercase letter, an uppercase letter, a digit, and a non-alphanumeric
// character. Advisory only; it never blocks submission.
func Strength(password string) (int, string) {
	if password == "" {
		return 0, strengthLabels[0]
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		score++
	}
	if strings.ContainsFunc(password, isDigit) {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !isDigit(r)
	}) {
		score++
	}

	return score, strengthLabels[score]
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// SanitizeOTP strips non-digit characters from typed OTP input.
func SanitizeOTP(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
