package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of bank account.
type AccountType string

// Recognized account types.
const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

// ParseAccountType parses a wire-level account type string.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountTypeSavings, AccountTypeChecking:
		return AccountType(s), nil
	default:
		return "", ErrInvalidAccountType
	}
}

// Account represents a client's bank account holding a running balance.
// InitialBalance is set at creation and never mutated; Balance is mutated
// only by the movement engine.
type Account struct {
	ID             string
	Number         string
	Type           AccountType
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	Active         bool
	ClientID       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateWithdrawal checks if the account balance covers a withdrawal of magnitude.
func (a *Account) ValidateWithdrawal(magnitude decimal.Decimal) error {
	if magnitude.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyMovement returns the balance after applying a signed amount.
func (a *Account) ApplyMovement(signedAmount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(signedAmount)
}
