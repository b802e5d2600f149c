package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountNumber  = errors.New("invalid account number")
	ErrInvalidClientName     = errors.New("invalid client name")
	ErrInvalidIdentification = errors.New("invalid identification")
	ErrInvalidGender         = errors.New("invalid gender")
	ErrInvalidAge            = errors.New("invalid age")
	ErrAmountTooLarge        = errors.New("amount exceeds maximum allowed")
	ErrDescriptionTooLong    = errors.New("description exceeds maximum length")
	ErrInvalidBalance        = errors.New("initial balance cannot be negative")
)

// Validation constants
const (
	MaxClientNameLength  = 255
	MinClientNameLength  = 1
	MaxDescriptionLength = 500
	MaxMovementAmount    = "1000000000" // 1 billion
	MinAge               = 18
	MaxAge               = 130
)

// Account numbers are fixed-format: exactly six digits.
var accountNumberRegex = regexp.MustCompile(`^\d{6}$`)

// Identifications are national ID numbers: 10 digits.
var identificationRegex = regexp.MustCompile(`^\d{10}$`)

// ValidateAccountNumber validates the fixed account number format.
func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(strings.TrimSpace(number)) {
		return fmt.Errorf("%w: must be exactly 6 digits", ErrInvalidAccountNumber)
	}
	return nil
}

// ValidateInitialBalance validates an account's opening balance.
func ValidateInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrInvalidBalance
	}
	return nil
}

// ValidateMovementAmount validates a movement magnitude against system bounds.
func ValidateMovementAmount(magnitude decimal.Decimal) error {
	if magnitude.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxMovementAmount)
	if magnitude.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxMovementAmount)
	}

	return nil
}

// ValidateDescription validates a movement description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: limit is %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}
	return nil
}

// ValidateClient validates client fields on creation and update.
func ValidateClient(c *Client) error {
	name := strings.TrimSpace(c.Name)

	if len(name) < MinClientNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidClientName)
	}

	if len(name) > MaxClientNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidClientName, MaxClientNameLength)
	}

	if !c.Gender.IsValid() {
		return fmt.Errorf("%w: must be M, F or O", ErrInvalidGender)
	}

	if c.Age < MinAge || c.Age > MaxAge {
		return fmt.Errorf("%w: must be between %d and %d", ErrInvalidAge, MinAge, MaxAge)
	}

	if !identificationRegex.MatchString(strings.TrimSpace(c.Identification)) {
		return fmt.Errorf("%w: must be exactly 10 digits", ErrInvalidIdentification)
	}

	return nil
}
