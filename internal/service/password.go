package service

import (
	"fmt"
	"unicode"
)

const (
	passwordMinLength   = 12
	passwordMinUpper    = 2
	passwordMinDigits   = 4
	passwordMinSpecials = 1
)

// ValidatePassword enforces the registration password policy: at least 12
// characters with 2 uppercase letters, 4 digits and a special character.
func ValidatePassword(password string) error {
	var upper, digits, specials int
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsDigit(r):
			digits++
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			specials++
		}
	}

	switch {
	case len([]rune(password)) < passwordMinLength:
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, passwordMinLength)
	case upper < passwordMinUpper:
		return fmt.Errorf("%w: password needs at least %d uppercase letters", ErrValidation, passwordMinUpper)
	case digits < passwordMinDigits:
		return fmt.Errorf("%w: password needs at least %d digits", ErrValidation, passwordMinDigits)
	case specials < passwordMinSpecials:
		return fmt.Errorf("%w: password needs at least %d special characters", ErrValidation, passwordMinSpecials)
	}
	return nil
}
