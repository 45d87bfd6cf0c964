// Package phone normalizes customer phone numbers to the country-coded digit
// string the WhatsApp gateway expects (e.g. "0123456789" -> "60123456789").
package phone

import (
	"errors"
	"strings"
)

// ErrTooShort is returned when a number has fewer digits than any real phone.
var ErrTooShort = errors.New("phone: number too short")

const minDigits = 8

// Normalize strips formatting from raw and prefixes the default country code
// when the number is written in national form (leading zero).
func Normalize(raw, defaultCountryCode string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) < minDigits {
		return "", ErrTooShort
	}

	cc := strings.TrimPrefix(defaultCountryCode, "+")

	switch {
	case strings.HasPrefix(digits, "0"):
		// National format: replace the trunk zero with the country code.
		return cc + strings.TrimLeft(digits, "0"), nil
	case strings.HasPrefix(digits, cc):
		return digits, nil
	default:
		return cc + digits, nil
	}
}
