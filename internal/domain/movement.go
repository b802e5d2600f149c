package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType identifies the direction of a movement.
type MovementType string

// Recognized movement types.
const (
	MovementTypeDeposit    MovementType = "DEPOSIT"
	MovementTypeWithdrawal MovementType = "WITHDRAWAL"
)

// ParseMovementType parses a wire-level movement type string.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case MovementTypeDeposit, MovementTypeWithdrawal:
		return MovementType(s), nil
	default:
		return "", ErrInvalidMovementType
	}
}

// SignedAmount converts a positive magnitude into the signed amount stored on
// a movement: positive for deposits, negative for withdrawals.
func (t MovementType) SignedAmount(magnitude decimal.Decimal) decimal.Decimal {
	if t == MovementTypeWithdrawal {
		return magnitude.Abs().Neg()
	}
	return magnitude.Abs()
}

// Movement represents a single deposit or withdrawal on an account.
// Amount carries the sign derived from Type. Balance is the account balance
// immediately after this movement was applied. OccurredAt is the date of the
// financial event and never changes, even when the movement is revised.
type Movement struct {
	ID          string
	AccountID   string
	OccurredAt  time.Time
	Type        MovementType
	Amount      decimal.Decimal
	Balance     decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PreviousBalance reconstructs the account balance that existed immediately
// before this movement was applied.
func (m *Movement) PreviousBalance() decimal.Decimal {
	return m.Balance.Sub(m.Amount)
}

// ValidateMovement runs the pure movement checks against a known account
// balance. It performs no I/O and leaves no state behind.
func ValidateMovement(balance decimal.Decimal, typ MovementType, magnitude decimal.Decimal) error {
	if typ != MovementTypeDeposit && typ != MovementTypeWithdrawal {
		return ErrInvalidMovementType
	}

	if magnitude.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if typ == MovementTypeWithdrawal && magnitude.GreaterThan(balance) {
		return ErrInsufficientFunds
	}

	return nil
}
