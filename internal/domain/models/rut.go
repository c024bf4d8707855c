package models

import (
	"strings"
	"unicode"
)

const rutMaxDigits = 8

// NormalizeRut reduces a free-form RUT to its first eight digits, dropping
// separators, the check digit and any other formatting. Cosmetically
// different renderings of the same document collide to the same key, which
// is what makes it usable as an upsert key. Inputs carrying more than eight
// digits are truncated, not rejected, so two documents sharing the same
// first eight digits map to the same record. Returns "" when the input has
// no digits at all.
func NormalizeRut(raw string) string {

	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
		if digits.Len() == rutMaxDigits {
			break
		}
	}

	return digits.String()
}
