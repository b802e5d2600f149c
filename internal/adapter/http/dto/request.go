package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// CreateMovementRequest represents a request to record a movement. Older
// clients send the type as transaction_type, current ones as movement_type;
// both name the same field and are reconciled here, at the wire boundary,
// so nothing past the DTO ever sees the legacy name.
type CreateMovementRequest struct {
	AccountID       string          `json:"account_id"`
	MovementType    string          `json:"movement_type,omitempty"`
	TransactionType string          `json:"transaction_type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	OccurredAt      *time.Time      `json:"occurred_at,omitempty"`
}

// Type resolves the movement type, preferring the current field name when a
// client sends both.
func (r *CreateMovementRequest) Type() string {
	if r.MovementType != "" {
		return r.MovementType
	}
	return r.TransactionType
}

// ToUseCaseInput converts to use case input.
func (r *CreateMovementRequest) ToUseCaseInput() usecase.CreateMovementInput {
	return usecase.CreateMovementInput{
		AccountID:   r.AccountID,
		Type:        domain.MovementType(r.Type()),
		Magnitude:   r.Amount,
		Description: r.Description,
		OccurredAt:  r.OccurredAt,
	}
}

// ReviseMovementRequest represents a request to rewrite a recorded movement.
type ReviseMovementRequest struct {
	MovementType    string          `json:"movement_type,omitempty"`
	TransactionType string          `json:"transaction_type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
}

// Type resolves the movement type, preferring the current field name.
func (r *ReviseMovementRequest) Type() string {
	if r.MovementType != "" {
		return r.MovementType
	}
	return r.TransactionType
}

// ToUseCaseInput converts to use case input.
func (r *ReviseMovementRequest) ToUseCaseInput(movementID string) usecase.ReviseMovementInput {
	return usecase.ReviseMovementInput{
		MovementID: movementID,
		Type:       domain.MovementType(r.Type()),
		Magnitude:  r.Amount,
	}
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	Number         string          `json:"number"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	ClientID       string          `json:"client_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Number:         r.Number,
		Type:           domain.AccountType(r.Type),
		InitialBalance: r.InitialBalance,
		ClientID:       r.ClientID,
	}
}

// CreateClientRequest represents a request to register a client.
type CreateClientRequest struct {
	Name           string `json:"name"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	Identification string `json:"identification"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateClientRequest) ToUseCaseInput() usecase.CreateClientInput {
	return usecase.CreateClientInput{
		Name:           r.Name,
		Gender:         domain.Gender(r.Gender),
		Age:            r.Age,
		Identification: r.Identification,
		Address:        r.Address,
		Phone:          r.Phone,
	}
}

// UpdateClientRequest represents a partial client update. Absent fields are
// left unchanged; the identification cannot be changed at all.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Gender  *string `json:"gender,omitempty"`
	Age     *int    `json:"age,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateClientRequest) ToUseCaseInput() usecase.UpdateClientInput {
	input := usecase.UpdateClientInput{
		Name:    r.Name,
		Age:     r.Age,
		Address: r.Address,
		Phone:   r.Phone,
	}

	if r.Gender != nil {
		g := domain.Gender(*r.Gender)
		input.Gender = &g
	}

	return input
}

// SetStatusRequest toggles an active flag.
type SetStatusRequest struct {
	Active bool `json:"active"`
}
