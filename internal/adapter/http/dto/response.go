package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// MovementResponse represents a movement in API responses. Amount keeps the
// stored sign, balance is the post-movement snapshot.
type MovementResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Type        string          `json:"movement_type"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	return &MovementResponse{
		ID:          m.ID,
		AccountID:   m.AccountID,
		OccurredAt:  m.OccurredAt,
		Type:        string(m.Type),
		Amount:      m.Amount,
		Balance:     m.Balance,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Balance        decimal.Decimal `json:"balance"`
	Active         bool            `json:"active"`
	ClientID       string          `json:"client_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Number:         a.Number,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance,
		Balance:        a.Balance,
		Active:         a.Active,
		ClientID:       a.ClientID,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// BalanceResponse represents an account's current balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Gender         string    `json:"gender"`
	Age            int       `json:"age"`
	Identification string    `json:"identification"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientFromDomain converts a domain client to a response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		Gender:         string(c.Gender),
		Age:            c.Age,
		Identification: c.Identification,
		Address:        c.Address,
		Phone:          c.Phone,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ClientsFromDomain converts domain clients to responses.
func ClientsFromDomain(clients []*domain.Client) []*ClientResponse {
	result := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		result[i] = ClientFromDomain(c)
	}
	return result
}

// AvailabilityResponse reports whether an account number or identification
// is free to use.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// StatementGroupResponse represents one account's section of a statement.
type StatementGroupResponse struct {
	AccountNumber    string              `json:"account_number"`
	AccountType      string              `json:"account_type"`
	OpeningBalance   decimal.Decimal     `json:"opening_balance"`
	TotalDeposits    decimal.Decimal     `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal     `json:"total_withdrawals"`
	ClosingBalance   decimal.Decimal     `json:"closing_balance"`
	Movements        []*MovementResponse `json:"movements"`
}

// StatementResponse represents a client statement over a date range.
type StatementResponse struct {
	Client    *ClientResponse           `json:"client"`
	StartDate string                    `json:"start_date"`
	EndDate   string                    `json:"end_date"`
	Accounts  []*StatementGroupResponse `json:"accounts"`
	Totals    StatementTotalsResponse   `json:"totals"`
}

// StatementTotalsResponse sums a statement across all account groups.
type StatementTotalsResponse struct {
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
}

// StatementGroupFromDomain converts a domain statement group to a response.
func StatementGroupFromDomain(g *domain.StatementGroup) *StatementGroupResponse {
	return &StatementGroupResponse{
		AccountNumber:    g.AccountNumber,
		AccountType:      string(g.AccountType),
		OpeningBalance:   g.OpeningBalance,
		TotalDeposits:    g.TotalDeposits,
		TotalWithdrawals: g.TotalWithdrawals,
		ClosingBalance:   g.ClosingBalance,
		Movements:        MovementsFromDomain(g.Movements),
	}
}

// ListMovementsResponse wraps a movement listing.
type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movements"`
	Total     int64               `json:"total"`
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListClientsResponse wraps a client listing.
type ListClientsResponse struct {
	Clients []*ClientResponse `json:"clients"`
	Total   int64             `json:"total"`
}

// ConsistencyResponse reports the ledger-wide snapshot check.
type ConsistencyResponse struct {
	Consistent bool     `json:"consistent"`
	AccountIDs []string `json:"account_ids,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
