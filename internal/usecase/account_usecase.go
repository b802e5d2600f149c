package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

const takenMarker = "taken"

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	clientRepo  ClientRepository
	idGen       IDGenerator
	cache       Cache
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, clientRepo ClientRepository, idGen IDGenerator, cache Cache) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		idGen:       idGen,
		cache:       cache,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Number         string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
	ClientID       string
}

// CreateAccount creates a new account. The current balance starts at the
// initial balance, which is never mutated afterwards.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	number := strings.TrimSpace(input.Number)

	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	if _, err := domain.ParseAccountType(string(input.Type)); err != nil {
		return nil, err
	}

	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return nil, err
	}

	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	available, err := uc.CheckNumberAvailable(ctx, number)
	if err != nil {
		return nil, err
	}

	if !available {
		return nil, domain.ErrDuplicateAccountNumber
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Number:         number,
		Type:           input.Type,
		InitialBalance: input.InitialBalance,
		Balance:        input.InitialBalance,
		Active:         true,
		ClientID:       input.ClientID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, numberCacheKey(number), takenMarker, UniquenessCacheTTL)
	}

	return account, nil
}

// CheckNumberAvailable reports whether an account number is free to use.
// A cached "taken" marker is trusted; anything else falls through to the
// authoritative store so the cache and the store cannot disagree on
// availability.
func (uc *AccountUseCase) CheckNumberAvailable(ctx context.Context, number string) (bool, error) {
	number = strings.TrimSpace(number)

	if err := domain.ValidateAccountNumber(number); err != nil {
		return false, err
	}

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, numberCacheKey(number)); err == nil && cached == takenMarker {
			return false, nil
		}
	}

	exists, err := uc.accountRepo.ExistsByNumber(ctx, number)
	if err != nil {
		return false, err
	}

	if exists && uc.cache != nil {
		_ = uc.cache.Set(ctx, numberCacheKey(number), takenMarker, UniquenessCacheTTL)
	}

	return !exists, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByNumber retrieves an account by its account number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, strings.TrimSpace(number))
}

// SetAccountStatus flips the account's active flag. Accounts are never hard
// deleted while movements reference them.
func (uc *AccountUseCase) SetAccountStatus(ctx context.Context, id string, active bool) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.SetActive(ctx, id, active, now); err != nil {
		return nil, err
	}

	account.Active = active
	account.UpdatedAt = now

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}

// ListAccountsByClient lists all accounts owned by a client.
func (uc *AccountUseCase) ListAccountsByClient(ctx context.Context, clientID string) ([]*domain.Account, error) {
	if _, err := uc.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	return uc.accountRepo.ListByClient(ctx, clientID)
}

func numberCacheKey(number string) string {
	return "account-number:" + number
}
