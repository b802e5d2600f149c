package domain

import "errors"

var (
	// Movement errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidMovementType = errors.New("movement type must be DEPOSIT or WITHDRAWAL")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrMovementNotFound    = errors.New("movement not found")
	ErrNotLatestMovement   = errors.New("only the latest movement of an account can be revised")

	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrAccountBusy            = errors.New("account is locked by another operation")
	ErrInvalidAccountType     = errors.New("account type must be SAVINGS or CHECKING")
	ErrDuplicateAccountNumber = errors.New("account number already exists")

	// Client errors
	ErrClientNotFound          = errors.New("client not found")
	ErrDuplicateIdentification = errors.New("identification already exists")
)
