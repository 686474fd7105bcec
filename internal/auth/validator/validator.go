// Package validator registers the password policy with the request validator.
package validator

import (
	"unicode"

	"github.com/go-playground/validator/v10"

	platformvalidator "aptivai_backend/platform/validator"
)

// StrongPasswordTag is the struct tag name of the password policy.
const StrongPasswordTag = "strongpassword"

// PasswordPolicy describes the password requirements for API error messages.
const PasswordPolicy = "Password must be at least 8 characters and include an uppercase letter, a lowercase letter, a number and a special character"

// Register adds the strongpassword rule to val.
func Register(val *platformvalidator.Validator) error {
	return val.RegisterValidation(StrongPasswordTag, validateStrongPassword)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrong(fl.Field().String())
}

// IsStrong reports whether password meets the policy.
func IsStrong(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}
