// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is applied to numbers written without a country prefix.
const DefaultRegion = "ZA"

// ErrInvalidNumber is returned by Parse for input that is not a dialable number.
var ErrInvalidNumber = errors.New("invalid phone number")

// Parse formats a phone number to E.164 and rejects anything that is not a valid number.
func Parse(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalidNumber
	}

	number, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalidNumber
	}

	return phonenumbers.Format(number, phonenumbers.E164), nil
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	formatted, err := Parse(input)
	if err != nil {
		return strings.TrimSpace(input)
	}
	return formatted
}
