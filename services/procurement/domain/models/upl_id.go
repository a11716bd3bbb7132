package models

import (
	"fmt"

	procdomain "github.com/ghuser/procurement/services/procurement/domain"
)

// UplID is a value object for a unit-load identifier: a digits-only string
// whose last digit is a Luhn check digit. Self-validating ids catch
// transcription errors before a candidate ever reaches the registry.
type UplID string

// NewUplID validates s against the Luhn check-digit test.
func NewUplID(s string) (UplID, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("%w: %q is too short", procdomain.ErrInvalidChecksum, s)
	}
	sum := 0
	double := true
	for i := len(s) - 2; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			return "", fmt.Errorf("%w: %q contains a non-digit character", procdomain.ErrInvalidChecksum, s)
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	check := s[len(s)-1]
	if check < '0' || check > '9' {
		return "", fmt.Errorf("%w: %q contains a non-digit character", procdomain.ErrInvalidChecksum, s)
	}
	if (sum+int(check-'0'))%10 != 0 {
		return "", fmt.Errorf("%w: %q has a wrong check digit", procdomain.ErrInvalidChecksum, s)
	}
	return UplID(s), nil
}

// String returns the underlying identifier.
func (id UplID) String() string {
	return string(id)
}
